package x

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
)

// Authenticator extracts authentication info from the context. Handlers
// receive it in their constructor so that the envelope signers and the
// authority of a forwarded call can be plugged in together.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(weave.Context) []weave.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(weave.Context, weave.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators. Each
// condition is returned once, in the order it was first seen.
func (m MultiAuth) GetConditions(ctx weave.Context) []weave.Condition {
	var res []weave.Condition
	seen := make(map[string]struct{})
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if _, ok := seen[string(c)]; ok {
				continue
			}
			seen[string(c)] = struct{}{}
			res = append(res, c)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// RequireSigners returns ErrUnauthorized if any account of an instruction
// that is marked as a signer is not authenticated in the context.
func RequireSigners(ctx weave.Context, auth Authenticator, accounts []weave.AccountMeta) error {
	for i, a := range accounts {
		if a.IsSigner && !auth.HasAddress(ctx, a.Address) {
			return errors.Wrapf(errors.ErrUnauthorized, "account %d (%s) is not a signer", i, a.Address)
		}
	}
	return nil
}

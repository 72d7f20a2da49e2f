package multisig

import (
	"context"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/x"
)

type contextKey int // local to the multisig module

const (
	contextKeyMultisig contextKey = iota
)

// withMultisig is a private method, as only this module can grant the
// authority of a config
func withMultisig(ctx weave.Context, configID []byte) weave.Context {
	return context.WithValue(ctx, contextKeyMultisig, AuthorityCondition(configID))
}

// Authenticate gives access to the authority of the config whose call is
// being forwarded.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns permissions previously set on this context
func (a Authenticate) GetConditions(ctx weave.Context) []weave.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyMultisig).(weave.Condition)
	if val == nil {
		return nil
	}
	return []weave.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx weave.Context, addr weave.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

package multisig

import (
	"bytes"
	"fmt"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/gconf"
	"github.com/iov-one/stateless-weave/x"
	"github.com/iov-one/stateless-weave/x/batch"
	"github.com/iov-one/stateless-weave/x/sigverify"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Approved calls are forwarded to the given handler, usually the
// application router.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, forward weave.Handler) {
	bucket := NewConfigBucket()
	r.Handle(ProgramID, Handler{
		create:  CreateHandler{auth: auth, bucket: bucket},
		execute: ExecuteHandler{auth: auth, bucket: bucket, forward: forward},
	})
	r.Handle(ConfigProgramID, gconf.NewUpdateConfigurationHandler("multisig", &Configuration{}, auth))
}

// RegisterQuery exposes multisig configs under "/multisigs".
func RegisterQuery(qr weave.QueryRouter) {
	NewConfigBucket().Register("multisigs", qr)
}

// Handler is the multisig program. It passes the instruction to the
// handler of the message it carries.
type Handler struct {
	create  CreateHandler
	execute ExecuteHandler
}

var _ weave.Handler = Handler{}

func (h Handler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	p, err := loadPayload(tx)
	if err != nil {
		return nil, err
	}
	if p.Create != nil {
		return h.create.Check(ctx, db, p.Create)
	}
	return h.execute.Check(ctx, db, p.Execute)
}

func (h Handler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	p, err := loadPayload(tx)
	if err != nil {
		return nil, err
	}
	if p.Create != nil {
		return h.create.Deliver(ctx, db, p.Create)
	}
	return h.execute.Deliver(ctx, db, tx, p.Execute)
}

// CreateHandler creates a new config. The submitter must be authenticated.
type CreateHandler struct {
	auth   x.Authenticator
	bucket ConfigBucket
}

func (h CreateHandler) Check(ctx weave.Context, db weave.KVStore, msg *CreateMsg) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx weave.Context, db weave.KVStore, msg *CreateMsg) (*weave.DeliverResult, error) {
	config, err := h.validate(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	id := config.ID()
	if err := h.bucket.Put(db, id, config); err != nil {
		return nil, errors.Wrap(err, "cannot store config")
	}
	return &weave.DeliverResult{
		Data: id,
		Log:  fmt.Sprintf("config %s created", id),
	}, nil
}

// validate does all common pre-processing between Check and Deliver
func (h CreateHandler) validate(ctx weave.Context, db weave.KVStore, msg *CreateMsg) (*Config, error) {
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "create requires a signer")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(msg.Owners) > int(conf.MaxOwners) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "too many owners: %d > %d", len(msg.Owners), conf.MaxOwners)
	}

	id := ConfigID(msg.Seed)
	switch err := h.bucket.Has(db, id); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "config %s", id)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	return &Config{
		Scheme:    msg.Scheme,
		Owners:    msg.Owners,
		Threshold: msg.Threshold,
		Nonce:     0,
		Seed:      msg.Seed,
		Authority: AuthorityAddress(id),
	}, nil
}

// ExecuteHandler verifies a call approved by the owners of a config and
// forwards it with the authority of the config.
type ExecuteHandler struct {
	auth    x.Authenticator
	bucket  ConfigBucket
	forward weave.Handler
}

// Check runs every verification step. Nothing is forwarded.
func (h ExecuteHandler) Check(ctx weave.Context, db weave.KVStore, msg *ExecuteMsg) (*weave.CheckResult, error) {
	_, signers, err := h.verify(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	return &weave.CheckResult{Log: fmt.Sprintf("approved by %d owners", signers)}, nil
}

// Deliver verifies the call, increments the nonce and forwards the call.
// The transaction is expected to run inside a savepoint, so a failed
// forward call rolls back the nonce too.
func (h ExecuteHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, msg *ExecuteMsg) (*weave.DeliverResult, error) {
	config, signers, err := h.verify(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	nonce := config.Nonce
	if err := config.IncrementNonce(); err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.ConfigID, config); err != nil {
		return nil, errors.Wrap(err, "cannot store config")
	}

	weave.GetLogger(ctx).Debug("multisig execution",
		"config", msg.ConfigID, "nonce", nonce, "signers", signers)

	fwd, err := h.forwarded(ctx, msg)
	if err != nil {
		return nil, err
	}
	fctx := weave.WithInstructions(withMultisig(ctx, msg.ConfigID), []*weave.Instruction{fwd}, 0)
	res, err := h.forward.Deliver(fctx, db, &batch.InstructionTx{Tx: tx, Instruction: fwd})
	if err != nil {
		return nil, errors.Wrap(err, "forwarded call")
	}
	return res, nil
}

// verify runs all gates in order and returns the loaded config together
// with the number of owners that approved the call.
func (h ExecuteHandler) verify(ctx weave.Context, db weave.KVStore, msg *ExecuteMsg) (*Config, int, error) {
	if err := msg.Validate(); err != nil {
		return nil, 0, err
	}
	config, err := h.bucket.GetConfig(db, msg.ConfigID)
	if err != nil {
		return nil, 0, err
	}

	authority := AuthorityAddress(msg.ConfigID)
	if !authority.Equals(config.Authority) || !authority.Equals(msg.Authority) {
		return nil, 0, errors.Wrapf(ErrAddressMismatch, "authority %s", msg.Authority)
	}
	if msg.Nonce != config.Nonce {
		return nil, 0, errors.Wrapf(ErrNonceStale, "got %d, want %d", msg.Nonce, config.Nonce)
	}

	digest, err := BuildDigest(config.Scheme, authority, config.Nonce, msg.Accounts, msg.Target, msg.Data)
	if err != nil {
		return nil, 0, err
	}

	entries, err := verifiedEntries(ctx, config.Scheme)
	if err != nil {
		return nil, 0, err
	}

	seen := make([][]byte, 0, len(entries))
	for i, e := range entries {
		if !bytes.Equal(e.Message, digest) {
			return nil, 0, errors.Wrapf(ErrInvalidMessage, "entry %d", i)
		}
		if !config.IsOwner(e.Identity) {
			return nil, 0, errors.Wrapf(ErrInvalidSigner, "entry %d: %X", i, e.Identity)
		}
		for _, s := range seen {
			if bytes.Equal(s, e.Identity) {
				return nil, 0, errors.Wrapf(ErrDuplicateSigner, "entry %d: %X", i, e.Identity)
			}
		}
		if i >= len(msg.Signers) || !bytes.Equal(msg.Signers[i], e.Identity) {
			return nil, 0, errors.Wrapf(ErrInvalidMessageSigner, "entry %d: %X", i, e.Identity)
		}
		seen = append(seen, e.Identity)
	}
	if len(msg.Signers) != len(entries) {
		return nil, 0, errors.Wrapf(ErrInvalidMessageSigner, "%d signers claimed, %d verified", len(msg.Signers), len(entries))
	}

	if len(seen) < int(config.Threshold) {
		return nil, 0, errors.Wrapf(ErrThresholdNotMet, "%d of %d", len(seen), config.Threshold)
	}
	return config, len(seen), nil
}

// verifiedEntries returns the entries of the verification instruction that
// immediately precedes the executed one. By the time this instruction runs,
// every entry signature was accepted by the verification program.
func verifiedEntries(ctx weave.Context, scheme Scheme) ([]sigverify.Entry, error) {
	ix, err := weave.InstructionAt(ctx, -1)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrMissingVerificationInstruction, err.Error())
		}
		return nil, err
	}
	if !ix.ProgramID.Equals(scheme.VerificationProgram()) {
		return nil, errors.Wrapf(ErrMissingVerificationInstruction, "preceding instruction is for program %s", ix.ProgramID)
	}
	if len(ix.Accounts) != 0 {
		return nil, errors.Wrap(ErrMissingVerificationInstruction, "verification instruction takes no accounts")
	}
	return scheme.Layout().Decode(ix.Data)
}

// forwarded returns the instruction passed to the target program. Accounts
// naming the authority are signed by the config. Any other signer must be
// already authenticated in the calling context.
func (h ExecuteHandler) forwarded(ctx weave.Context, msg *ExecuteMsg) (*weave.Instruction, error) {
	fwd := msg.Instruction()
	accounts := make([]weave.AccountMeta, len(fwd.Accounts))
	for i, a := range fwd.Accounts {
		if a.Address.Equals(msg.Authority) {
			a.IsSigner = true
		} else if a.IsSigner && !h.auth.HasAddress(ctx, a.Address) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "account %d is not a signer", i)
		}
		accounts[i] = a
	}
	fwd.Accounts = accounts
	return fwd, nil
}

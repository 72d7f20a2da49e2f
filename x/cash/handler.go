package cash

import (
	"fmt"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r.Handle(ProgramID, NewSendHandler(auth))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth x.Authenticator
}

var _ weave.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator) SendHandler {
	return SendHandler{auth: auth}
}

// Check just verifies it is properly formed and authorized
func (h SendHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, src, dest, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := MoveCoins(db, src, dest, msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Log: fmt.Sprintf("sent %s", msg.Amount)}, nil
}

// validate does all common pre-processing between Check and Deliver
func (h SendHandler) validate(ctx weave.Context, tx weave.Tx) (*SendMsg, weave.Address, weave.Address, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(ix.Accounts) != 2 {
		return nil, nil, nil, errors.Wrapf(errors.ErrInput, "source and destination accounts required, got %d", len(ix.Accounts))
	}
	src, dest := ix.Accounts[0], ix.Accounts[1]
	if !src.IsSigner || !src.IsWritable || !dest.IsWritable {
		return nil, nil, nil, errors.Wrap(errors.ErrInput, "invalid account flags")
	}

	var msg SendMsg
	if err := msg.Unmarshal(ix.Data); err != nil {
		return nil, nil, nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	// Make sure we have permission from the source
	if err := x.RequireSigners(ctx, h.auth, ix.Accounts); err != nil {
		return nil, nil, nil, err
	}
	return &msg, src.Address, dest.Address, nil
}

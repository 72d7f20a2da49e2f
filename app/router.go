package app

import (
	"fmt"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
)

// Router allows us to register many handlers under different program IDs
// and then dispatch each instruction to the handler of the program it is
// addressed to.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]weave.Handler
}

var _ weave.Registry = (*Router)(nil)
var _ weave.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]weave.Handler, 10),
	}
}

// Handle adds a new Handler for the given program ID. This function panics
// if the program ID is not a valid address or a handler is already
// registered under it.
func (r *Router) Handle(programID weave.Address, h weave.Handler) {
	if err := programID.Validate(); err != nil {
		panic(fmt.Sprintf("invalid program id: %s", err))
	}
	key := string(programID)
	if _, ok := r.routes[key]; ok {
		panic(fmt.Sprintf("re-registering program: %s", programID))
	}
	r.routes[key] = h
}

// handler returns the handler of the program that the single instruction
// of given transaction is addressed to.
func (r *Router) handler(tx weave.Tx) (weave.Handler, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	h, ok := r.routes[string(ix.ProgramID)]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchProgram, "program %s", ix.ProgramID)
	}
	return h, nil
}

// Check dispatches to the proper handler based on the program ID
func (r *Router) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the program ID
func (r *Router) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}

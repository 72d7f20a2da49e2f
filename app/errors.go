package app

import "github.com/iov-one/stateless-weave/errors"

// ErrNoSuchProgram is returned when an instruction is addressed to a
// program that is not registered in the router.
var ErrNoSuchProgram = errors.Register(18, "no such program")

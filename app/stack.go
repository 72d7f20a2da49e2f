package app

import (
	"context"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/x"
	"github.com/iov-one/stateless-weave/x/batch"
	"github.com/iov-one/stateless-weave/x/cash"
	"github.com/iov-one/stateless-weave/x/multisig"
	"github.com/iov-one/stateless-weave/x/sigs"
	"github.com/iov-one/stateless-weave/x/sigverify"
	"github.com/iov-one/stateless-weave/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication used by all programs: the
// envelope signers of a transaction and the multisig authority of a
// forwarded call.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, multisig.Authenticate{})
}

// Chain returns the decorators that wrap the router. Every transaction is
// an atomic unit: a failure of any of its instructions discards the writes
// of all of them.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator().AllowMissingSigs(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
		utils.NewProgramTagger(),
		batch.NewDecorator(),
	)
}

// Routes registers all programs of the application. The multisig program
// forwards approved calls back to the router.
func Routes(r *Router, auth x.Authenticator) {
	sigverify.RegisterRoutes(r)
	multisig.RegisterRoutes(r, auth, r)
	cash.RegisterRoutes(r, auth)
}

// QueryRouter returns the queries supported by the application.
func QueryRouter() weave.QueryRouter {
	qr := weave.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		multisig.RegisterQuery,
	)
	return qr
}

// Initializers returns the genesis initializers of all programs.
func Initializers() weave.Initializer {
	return weave.ChainInitializers(
		&multisig.Initializer{},
		cash.Initializer{},
	)
}

// Stack returns the complete transaction handler of the application.
func Stack() weave.Handler {
	r := NewRouter()
	Routes(r, Authenticator())
	return Chain().WithHandler(r)
}

// NewApplication returns an ABCI application that keeps its state in
// given store.
func NewApplication(name string, db weave.CommitKVStore, logger log.Logger, debug bool) BaseApp {
	store := NewStoreApp(name, db, QueryRouter(), context.Background()).
		WithLogger(logger).
		WithInit(Initializers())
	return NewBaseApp(store, TxDecoder, Stack(), debug)
}

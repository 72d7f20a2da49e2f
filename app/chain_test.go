package app

import (
	"context"
	"testing"

	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/store"
	"github.com/iov-one/stateless-weave/weavetest"
	"github.com/iov-one/stateless-weave/weavetest/assert"
	"github.com/iov-one/stateless-weave/x/utils"
)

func TestChain(t *testing.T) {
	var (
		c1 weavetest.Decorator
		c2 weavetest.Decorator
		c3 weavetest.Decorator
		h  weavetest.Handler
	)

	stack := ChainDecorators(
		&c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		&c2,
		nil,
		&c3,
	).WithHandler(&h)

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, weavetest.NewTx())
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, weavetest.NewTx())
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanic(t *testing.T) {
	var c1, c2 weavetest.Decorator

	stack := ChainDecorators(
		&c1,
		utils.NewRecovery(),
		&c2,
	).WithHandler(weavetest.PanicHandler{Value: "boom"})

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, weavetest.NewTx())
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, db, weavetest.NewTx())
	assert.IsErr(t, errors.ErrPanic, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
}

func TestChainStopsOnError(t *testing.T) {
	var (
		c1 weavetest.Decorator
		c2 = weavetest.Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}
		h  weavetest.Handler
	)
	stack := ChainDecorators(&c1, &c2).WithHandler(&h)

	ctx := context.Background()
	db := store.MemStore()

	_, err := stack.Check(ctx, db, weavetest.NewTx())
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = stack.Deliver(ctx, db, weavetest.NewTx())
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 0, h.CallCount())
}

package batch_test

import (
	"context"
	"strings"
	"testing"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/weavetest"
	"github.com/iov-one/stateless-weave/x/batch"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"github.com/tendermint/tendermint/libs/common"
)

type mockHelper struct {
	mock.Mock
}

func (m *mockHelper) Check(ctx context.Context, store weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	args := m.Called(ctx, store, tx)
	return args.Get(0).(*weave.CheckResult), args.Error(1)
}

func (m *mockHelper) Deliver(ctx context.Context, store weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	args := m.Called(ctx, store, tx)
	return args.Get(0).(*weave.DeliverResult), args.Error(1)
}

func mockTags(num int) []common.KVPair {
	return make([]common.KVPair, num)
}

func mockData(num int, content []byte) []byte {
	list := &batch.ByteArrayList{}
	for i := 0; i < num; i++ {
		list.Elements = append(list.Elements, content)
	}
	raw, err := list.Marshal()
	if err != nil {
		panic(err)
	}
	return raw
}

func mockLog(num int, content string) string {
	list := make([]string, num)
	for i := 0; i < num; i++ {
		list[i] = content
	}
	return strings.Join(list, "\n")
}

func mockTx(num int) *weavetest.Tx {
	ixs := make([]*weave.Instruction, num)
	for i := range ixs {
		ixs[i] = weavetest.Instruction("demo", []byte{byte(i)})
	}
	return weavetest.NewTx(ixs...)
}

func TestDecorator(t *testing.T) {
	Convey("Test Decorator", t, func() {
		helper := &mockHelper{}
		decorator := batch.NewDecorator()
		ctx := context.Background()

		Convey("Happy path", func() {
			num := 10
			logVal := "log"
			dataContent := make([]byte, 1)
			tx := mockTx(num)

			helper.On("Check", mock.Anything, nil, mock.Anything).Return(&weave.CheckResult{
				Data: dataContent,
				Log:  logVal,
			}, nil).Times(num)

			checkRes, err := decorator.Check(ctx, nil, tx, helper)
			So(err, ShouldBeNil)
			So(checkRes, ShouldResemble, &weave.CheckResult{
				Data: mockData(num, dataContent),
				Log:  mockLog(num, logVal),
			})

			helper.On("Deliver", mock.Anything, nil, mock.Anything).Return(&weave.DeliverResult{
				Data: dataContent,
				Log:  logVal,
				Tags: make([]common.KVPair, 1),
			}, nil).Times(num)

			deliverRes, err := decorator.Deliver(ctx, nil, tx, helper)
			So(err, ShouldBeNil)
			So(deliverRes, ShouldResemble, &weave.DeliverResult{
				Data: mockData(num, dataContent),
				Log:  mockLog(num, logVal),
				Tags: mockTags(num),
			})
			helper.AssertExpectations(t)
		})

		Convey("Each instruction is passed separately, in order", func() {
			tx := mockTx(3)
			rec := &recorder{}

			_, err := decorator.Deliver(ctx, nil, tx, rec)
			So(err, ShouldBeNil)
			So(rec.seen, ShouldResemble, tx.Instructions)
			So(rec.indexes, ShouldResemble, []int{0, 1, 2})
			So(rec.previous, ShouldResemble, []*weave.Instruction{nil, tx.Instructions[0], tx.Instructions[1]})
		})

		Convey("Error paths", func() {
			Convey("Tx GetInstructions error", func() {
				tx := &weavetest.Tx{Err: errors.ErrInput}

				_, err := decorator.Check(ctx, nil, tx, helper)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
				_, err = decorator.Deliver(ctx, nil, tx, helper)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
				helper.AssertExpectations(t)
			})

			Convey("No instructions", func() {
				_, err := decorator.Check(ctx, nil, weavetest.NewTx(), helper)
				So(errors.ErrEmpty.Is(err), ShouldBeTrue)
				_, err = decorator.Deliver(ctx, nil, weavetest.NewTx(), helper)
				So(errors.ErrEmpty.Is(err), ShouldBeTrue)
			})

			Convey("Too many instructions", func() {
				tx := mockTx(batch.MaxInstructions + 1)
				_, err := decorator.Check(ctx, nil, tx, helper)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
				_, err = decorator.Deliver(ctx, nil, tx, helper)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
			})

			Convey("Error while executing one of the instructions", func() {
				tx := mockTx(4)
				helper.On("Deliver", mock.Anything, nil, mock.Anything).Return((*weave.DeliverResult)(nil), errors.ErrUnauthorized).Times(1)
				helper.On("Check", mock.Anything, nil, mock.Anything).Return((*weave.CheckResult)(nil), errors.ErrUnauthorized).Times(1)

				_, err := decorator.Check(ctx, nil, tx, helper)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				_, err = decorator.Deliver(ctx, nil, tx, helper)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				helper.AssertExpectations(t)
			})
		})
	})
}

// recorder remembers every instruction it was called with, together with
// what the instruction introspection returned at that time.
type recorder struct {
	seen     []*weave.Instruction
	indexes  []int
	previous []*weave.Instruction
}

func (r *recorder) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return &weave.CheckResult{}, nil
}

func (r *recorder) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	r.seen = append(r.seen, ix)
	idx, _ := weave.CurrentInstructionIndex(ctx)
	r.indexes = append(r.indexes, idx)
	prev, _ := weave.InstructionAt(ctx, -1)
	r.previous = append(r.previous, prev)
	return &weave.DeliverResult{}, nil
}

package weave

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/stateless-weave/errors"
	common "github.com/tendermint/tendermint/libs/common"
)

// Handler is a core engine that can process a few specific instructions.
// This could represent "create a multisig", or "transfer coins".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or batching, to many Handlers
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router. Handlers are registered
// under the program ID they serve.
type Registry interface {
	Handle(programID Address, h Handler)
}

// CheckResult captures any non-error check result.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// DeliverResult captures any non-error deliver result.
type DeliverResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Tags are key-value pairs that allow to index the execution.
	Tags []common.KVPair
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under the given key and allows
// to decode them one by one. Each call to the returned function decodes the
// next element into obj. When the array is exhausted ErrEmpty is returned
// once. Any call after the stream finished returns ErrState.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	msg := o[key]
	if len(msg) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q key", key)
	}

	dec := json.NewDecoder(bytes.NewReader(msg))
	var (
		started  bool
		finished bool
	)
	return func(obj interface{}) error {
		if finished {
			return errors.Wrap(errors.ErrState, "stream finished")
		}
		if !started {
			started = true
			tok, err := dec.Token()
			if err != nil {
				finished = true
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			if tok != json.Delim('[') {
				finished = true
				return errors.Wrap(errors.ErrInput, "array expected")
			}
		}
		if !dec.More() {
			finished = true
			return errors.Wrap(errors.ErrEmpty, "end of stream")
		}
		if err := dec.Decode(obj); err != nil {
			finished = true
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer(inits)
}

type chainInitializer []Initializer

func (c chainInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

package cash

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/coin"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the coins of a single address.
type Wallet struct {
	Coins coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, w)
}

// Validate requires the coins to be normalized.
func (w *Wallet) Validate() error {
	return w.Coins.Validate()
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// Get returns the wallet of given address. An address that never received
// any coins has an empty wallet.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet of given address. An empty wallet is removed.
func (b Bucket) Save(db weave.KVStore, addr weave.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.Put(db, addr, w)
}

// Balance returns all coins owned by given address.
func Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	w, err := NewBucket().Get(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

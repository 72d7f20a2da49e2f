package cash

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/coin"
	"github.com/iov-one/stateless-weave/errors"
)

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	bucket := NewBucket()

	sender, err := bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrapf(err, "wallet %s", src)
	}
	if err := bucket.Save(db, src, sender); err != nil {
		return err
	}

	// Loaded after the sender is saved, so that sending to self works.
	recipient, err := bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrapf(err, "wallet %s", dest)
	}
	return bucket.Save(db, dest, recipient)
}

// IssueCoins adds the given amount of coins to the destination address.
// Fails if it overflows the wallet.
func IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	bucket := NewBucket()
	recipient, err := bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return bucket.Save(db, dest, recipient)
}

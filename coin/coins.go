package coin

import (
	"sort"

	"github.com/iov-one/stateless-weave/errors"
)

// Coins represents a set of coins. A normalized set is sorted by the ticker,
// has at most one coin per currency and no zero coins.
type Coins []Coin

// NormalizeCoins merges coins of the same currency, drops zero coins and
// sorts the result by the ticker.
func NormalizeCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(Coins(nil), cs...)
}

// AmountOf returns the amount held in given currency.
func (cs Coins) AmountOf(ticker string) int64 {
	if i, ok := cs.find(ticker); ok {
		return cs[i].Amount
	}
	return 0
}

// Add returns a new set with the holdings increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.Clone()
	i, ok := res.find(c.Ticker)
	if ok {
		sum, err := res[i].Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = sum
		return res, nil
	}
	if c.IsZero() {
		return res, nil
	}
	res = append(res, Coin{})
	copy(res[i+1:], res[i:])
	res[i] = c
	return res, nil
}

// Subtract returns a new set with the holdings decreased by c. It fails
// with ErrInsufficientAmount if there is not enough to subtract.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := cs.Clone()
	i, ok := res.find(c.Ticker)
	if !ok {
		if c.IsZero() {
			return res, nil
		}
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	diff, err := res[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = diff
	return res, nil
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	return cs.AmountOf(c.Ticker) >= c.Amount
}

// Equals returns true if both sets contain same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that the set is normalized and that each coin is valid
// in it's own right
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrState, "zero coin %s", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrState, "not sorted")
		}
	}
	return nil
}

// find returns the index of the coin with given ticker. If there is no
// such coin, the index where it should be inserted is returned.
func (cs Coins) find(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

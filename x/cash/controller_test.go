package cash

import (
	"testing"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/coin"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/store"
	"github.com/iov-one/stateless-weave/weavetest"
	"github.com/iov-one/stateless-weave/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.RandomAddr(t)
	bob := weavetest.RandomAddr(t)

	cases := map[string]struct {
		issue     []coin.Coin
		src       weave.Address
		amount    coin.Coin
		wantErr   *errors.Error
		wantAlice coin.Coins
		wantBob   coin.Coins
	}{
		"partial move": {
			issue:     []coin.Coin{coin.NewCoin(100, "IOV"), coin.NewCoin(5, "ETH")},
			src:       alice,
			amount:    coin.NewCoin(40, "IOV"),
			wantAlice: coin.Coins{coin.NewCoin(5, "ETH"), coin.NewCoin(60, "IOV")},
			wantBob:   coin.Coins{coin.NewCoin(40, "IOV")},
		},
		"move everything": {
			issue:   []coin.Coin{coin.NewCoin(100, "IOV")},
			src:     alice,
			amount:  coin.NewCoin(100, "IOV"),
			wantBob: coin.Coins{coin.NewCoin(100, "IOV")},
		},
		"insufficient funds": {
			issue:     []coin.Coin{coin.NewCoin(10, "IOV")},
			src:       alice,
			amount:    coin.NewCoin(11, "IOV"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.Coins{coin.NewCoin(10, "IOV")},
		},
		"unknown currency": {
			issue:     []coin.Coin{coin.NewCoin(10, "IOV")},
			src:       alice,
			amount:    coin.NewCoin(1, "ETH"),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: coin.Coins{coin.NewCoin(10, "IOV")},
		},
		"empty wallet": {
			src:     bob,
			amount:  coin.NewCoin(1, "ETH"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			issue:     []coin.Coin{coin.NewCoin(10, "IOV")},
			src:       alice,
			amount:    coin.NewCoin(0, "IOV"),
			wantErr:   errors.ErrAmount,
			wantAlice: coin.Coins{coin.NewCoin(10, "IOV")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			for _, c := range tc.issue {
				require.NoError(t, IssueCoins(db, alice, c))
			}

			dest := bob
			if tc.src.Equals(bob) {
				dest = alice
			}
			err := MoveCoins(db, tc.src, dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			got, err := Balance(db, alice)
			require.NoError(t, err)
			require.True(t, tc.wantAlice.Equals(got), "alice has %v", got)
			got, err = Balance(db, bob)
			require.NoError(t, err)
			require.True(t, tc.wantBob.Equals(got), "bob has %v", got)
		})
	}
}

func TestMoveCoinsToSelf(t *testing.T) {
	db := store.MemStore()
	alice := weavetest.RandomAddr(t)
	require.NoError(t, IssueCoins(db, alice, coin.NewCoin(10, "IOV")))
	require.NoError(t, MoveCoins(db, alice, alice, coin.NewCoin(4, "IOV")))

	got, err := Balance(db, alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Coins{coin.NewCoin(10, "IOV")}, got)
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	alice := weavetest.RandomAddr(t)
	require.NoError(t, IssueCoins(db, alice, coin.NewCoin(10, "IOV")))
	require.NoError(t, NewBucket().Has(db, alice))

	require.NoError(t, MoveCoins(db, alice, weavetest.RandomAddr(t), coin.NewCoin(10, "IOV")))
	assert.IsErr(t, errors.ErrNotFound, NewBucket().Has(db, alice))
}

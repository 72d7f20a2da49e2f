package multisig

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the extension configuration and creates the configs
// listed in the genesis. Without a configuration in the genesis, the
// default one is used.
func (*Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	err := gconf.InitConfig(kv, opts, "multisig", &Configuration{})
	switch {
	case errors.ErrNotFound.Is(err):
		def := Configuration{MaxOwners: DefaultMaxOwners}
		if err := gconf.Save(kv, "multisig", &def); err != nil {
			return errors.Wrap(err, "save default configuration")
		}
	case err != nil:
		return errors.Wrap(err, "init configuration")
	}

	var configs []struct {
		Scheme    Scheme           `json:"scheme"`
		Owners    []weave.HexBytes `json:"owners"`
		Threshold int32            `json:"threshold"`
		Seed      weave.HexBytes   `json:"seed"`
	}
	if err := opts.ReadOptions("multisig", &configs); err != nil {
		return err
	}

	bucket := NewConfigBucket()
	for i, c := range configs {
		owners := make([][]byte, len(c.Owners))
		for j, o := range c.Owners {
			owners[j] = o
		}
		id := ConfigID(c.Seed)
		config := Config{
			Scheme:    c.Scheme,
			Owners:    owners,
			Threshold: c.Threshold,
			Seed:      c.Seed,
			Authority: AuthorityAddress(id),
		}
		switch err := bucket.Has(kv, id); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "config #%d", i)
		case !errors.ErrNotFound.Is(err):
			return err
		}
		if err := bucket.Put(kv, id, &config); err != nil {
			return errors.Wrapf(err, "cannot save #%d config", i)
		}
	}
	return nil
}

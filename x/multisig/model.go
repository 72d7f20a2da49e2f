package multisig

import (
	"bytes"
	"math"

	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	"github.com/iov-one/stateless-weave/gconf"
	"github.com/iov-one/stateless-weave/orm"
	"github.com/iov-one/stateless-weave/x/sigverify"
	amino "github.com/tendermint/go-amino"
)

const (
	// BucketName is where we store the configs
	BucketName = "multisig"

	// SeedLength is the length of the caller chosen seed a config ID is
	// derived from.
	SeedLength = 16

	// A single verification instruction cannot hold more entries, so a
	// config with more owners could never be fully used.
	maxOwnersAllowed = sigverify.MaxEntries

	// configTag separates config IDs from other derived addresses.
	configTag = "stateless-multisig"
)

// ConfigID returns the address of the config created with given seed. It
// is known before the config is created.
func ConfigID(seed []byte) weave.Address {
	data := append([]byte(configTag), seed...)
	return weave.NewCondition("multisig", "config", data).Address()
}

// AuthorityCondition returns the condition that is granted to the forwarded
// call of the config with given ID.
func AuthorityCondition(configID []byte) weave.Condition {
	return weave.NewCondition("multisig", "authority", configID)
}

// AuthorityAddress returns the derived authority address of the config with
// given ID. There is no key for this address. It is only authenticated while
// a call approved by the owners is forwarded.
func AuthorityAddress(configID []byte) weave.Address {
	return AuthorityCondition(configID).Address()
}

// Config is the record of a single multisig.
type Config struct {
	Scheme Scheme
	// Owners are public keys (ed25519) or addresses (eth), in insertion
	// order.
	Owners    [][]byte
	Threshold int32
	// Nonce is incremented on every execution.
	Nonce uint64
	// Seed the config ID was derived from.
	Seed      []byte
	Authority weave.Address
}

var _ orm.Model = (*Config)(nil)

func (c *Config) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(c)
}

func (c *Config) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, c)
}

// Validate ensures the config is consistent.
func (c *Config) Validate() error {
	if err := validateOwners(c.Scheme, c.Owners, c.Threshold, maxOwnersAllowed); err != nil {
		return err
	}
	if len(c.Seed) != SeedLength {
		return errors.Wrapf(ErrInvalidConfiguration, "seed must be %d bytes", SeedLength)
	}
	if !c.Authority.Equals(AuthorityAddress(ConfigID(c.Seed))) {
		return errors.Wrap(ErrAddressMismatch, "authority is not derived from the config")
	}
	return nil
}

// ID returns the config ID.
func (c *Config) ID() weave.Address {
	return ConfigID(c.Seed)
}

// IsOwner returns true if the identity is one of the owners.
func (c *Config) IsOwner(identity []byte) bool {
	for _, o := range c.Owners {
		if bytes.Equal(o, identity) {
			return true
		}
	}
	return false
}

// IncrementNonce advances the nonce by one.
func (c *Config) IncrementNonce() error {
	if c.Nonce == math.MaxUint64 {
		return errors.Wrap(errors.ErrOverflow, "nonce")
	}
	c.Nonce++
	return nil
}

// validateOwners is shared by the model and the create instruction.
func validateOwners(scheme Scheme, owners [][]byte, threshold int32, maxOwners int) error {
	if err := scheme.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	switch n := len(owners); {
	case n == 0:
		return errors.Wrap(ErrInvalidConfiguration, "no owners")
	case n > maxOwners:
		return errors.Wrapf(ErrInvalidConfiguration, "too many owners: %d > %d", n, maxOwners)
	}
	size := scheme.IdentitySize()
	for i, o := range owners {
		if len(o) != size {
			return errors.Wrapf(ErrInvalidConfiguration, "owner %d must be %d bytes", i, size)
		}
		for _, prev := range owners[:i] {
			if bytes.Equal(prev, o) {
				return errors.Wrapf(ErrInvalidConfiguration, "owner %d is duplicated", i)
			}
		}
	}
	if threshold < 1 || int(threshold) > len(owners) {
		return errors.Wrapf(ErrInvalidConfiguration, "threshold must be between 1 and %d", len(owners))
	}
	return nil
}

// ConfigBucket stores multisig configs by their ID.
type ConfigBucket struct {
	orm.ModelBucket
}

// NewConfigBucket returns a bucket for multisig configs.
func NewConfigBucket() ConfigBucket {
	return ConfigBucket{ModelBucket: orm.NewModelBucket(BucketName)}
}

// GetConfig returns a config with given ID.
func (b ConfigBucket) GetConfig(db weave.ReadOnlyKVStore, id weave.Address) (*Config, error) {
	var c Config
	if err := b.One(db, id, &c); err != nil {
		return nil, errors.Wrapf(err, "config %s", id)
	}
	return &c, nil
}

// DefaultMaxOwners is used when the genesis does not configure the
// extension.
const DefaultMaxOwners = 100

// Configuration of the multisig extension, stored using gconf.
type Configuration struct {
	// Owner may update the configuration.
	Owner     weave.Address `json:"owner"`
	MaxOwners int32         `json:"max_owners"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() weave.Address { return c.Owner }

func (c *Configuration) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	// owner field is optional, without it the configuration is immutable
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if c.MaxOwners < 1 || c.MaxOwners > maxOwnersAllowed {
		return errors.Wrapf(errors.ErrModel, "max owners must be between 1 and %d", maxOwnersAllowed)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "multisig", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

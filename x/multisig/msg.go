package multisig

import (
	"github.com/iov-one/stateless-weave"
	"github.com/iov-one/stateless-weave/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	// ProgramName is the name the multisig program is registered under.
	ProgramName = "multisig"
	// ConfigProgramName is the name of the program that updates the
	// extension configuration.
	ConfigProgramName = "multisig_config"
)

var (
	// ProgramID is the address of the multisig program.
	ProgramID = weave.ProgramID(ProgramName)
	// ConfigProgramID is the address of the configuration update program.
	ConfigProgramID = weave.ProgramID(ConfigProgramName)
)

// CreateMsg creates a new multisig config.
type CreateMsg struct {
	Scheme    Scheme
	Owners    [][]byte
	Threshold int32
	// Seed is chosen by the caller. The config ID is derived from it.
	Seed []byte
}

// Validate checks the owners, the threshold and the seed. All problems are
// reported as ErrInvalidConfiguration.
func (m *CreateMsg) Validate() error {
	if err := validateOwners(m.Scheme, m.Owners, m.Threshold, maxOwnersAllowed); err != nil {
		return err
	}
	if len(m.Seed) != SeedLength {
		return errors.Wrapf(ErrInvalidConfiguration, "seed must be %d bytes", SeedLength)
	}
	return nil
}

// ExecuteMsg forwards a call approved by the owners of a config.
type ExecuteMsg struct {
	ConfigID weave.Address
	// Authority must be the derived authority of the config.
	Authority weave.Address
	Target    weave.Address
	Accounts  []weave.AccountMeta
	Data      []byte
	// Signers are the owner identities claimed to have signed, in the
	// order of the verification entries.
	Signers [][]byte
	Nonce   uint64
}

// Validate checks the message is well formed. It does not check the
// signatures.
func (m *ExecuteMsg) Validate() error {
	if err := m.ConfigID.Validate(); err != nil {
		return errors.Wrap(err, "config id")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := m.Target.Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	for i, a := range m.Accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	if len(m.Signers) > maxOwnersAllowed {
		return errors.Wrap(errors.ErrInput, "too many signers")
	}
	return nil
}

// Instruction returns the forwarded call.
func (m *ExecuteMsg) Instruction() *weave.Instruction {
	return &weave.Instruction{
		ProgramID: m.Target,
		Accounts:  m.Accounts,
		Data:      m.Data,
	}
}

// Payload is the instruction data of the multisig program. Exactly one of
// the fields is set.
type Payload struct {
	Create  *CreateMsg
	Execute *ExecuteMsg
}

func (p *Payload) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(p)
}

func (p *Payload) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, p)
}

// loadPayload decodes the instruction data of the multisig program.
func loadPayload(tx weave.Tx) (*Payload, error) {
	ix, err := weave.LoadInstruction(tx)
	if err != nil {
		return nil, err
	}
	var p Payload
	if err := p.Unmarshal(ix.Data); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	if (p.Create == nil) == (p.Execute == nil) {
		return nil, errors.Wrap(errors.ErrMsg, "exactly one message required")
	}
	return &p, nil
}

// NewCreateInstruction returns an instruction for the multisig program that
// creates a config.
func NewCreateInstruction(msg *CreateMsg) (*weave.Instruction, error) {
	return newInstruction(&Payload{Create: msg})
}

// NewExecuteInstruction returns an instruction for the multisig program that
// executes a forwarded call.
func NewExecuteInstruction(msg *ExecuteMsg) (*weave.Instruction, error) {
	return newInstruction(&Payload{Execute: msg})
}

func newInstruction(p *Payload) (*weave.Instruction, error) {
	data, err := p.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	return &weave.Instruction{ProgramID: ProgramID, Data: data}, nil
}

package multisig

import "github.com/iov-one/stateless-weave/errors"

// Each failure of the execution verifier has its own error, so that off-chain
// tooling can discriminate the cause. multisig takes 1030-1039.
var (
	ErrInvalidConfiguration           = errors.Register(1030, "invalid multisig configuration")
	ErrAddressMismatch                = errors.Register(1031, "authority address mismatch")
	ErrNonceStale                     = errors.Register(1032, "stale nonce")
	ErrInvalidMessage                 = errors.Register(1033, "invalid message")
	ErrInvalidSigner                  = errors.Register(1034, "invalid signer")
	ErrInvalidMessageSigner           = errors.Register(1035, "invalid message signer")
	ErrDuplicateSigner                = errors.Register(1036, "duplicate signer")
	ErrThresholdNotMet                = errors.Register(1037, "signers below threshold")
	ErrMissingVerificationInstruction = errors.Register(1038, "missing verification instruction")
)

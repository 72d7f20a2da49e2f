package sigverify

import "github.com/iov-one/stateless-weave/errors"

var (
	// ErrMalformedVerificationData is returned when the data of a
	// verification instruction cannot be decoded.
	ErrMalformedVerificationData = errors.Register(1020, "malformed verification data")

	// ErrInvalidSignature is returned when an entry of a verification
	// instruction does not verify.
	ErrInvalidSignature = errors.Register(1021, "invalid signature")
)

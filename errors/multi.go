package errors

import (
	"fmt"
	"strings"
)

// Append combines given errors into a single error. Nil values are
// ignored. If no error is left, nil is returned. A single error is returned
// unchanged, so that its root cause is preserved.
func Append(errs ...error) error {
	var merr multiErr
	for _, e := range errs {
		if e == nil {
			continue
		}
		if m, ok := e.(multiErr); ok {
			merr = append(merr, m...)
			continue
		}
		merr = append(merr, e)
	}
	switch len(merr) {
	case 0:
		return nil
	case 1:
		return merr[0]
	default:
		return merr
	}
}

// multiErr holds several errors. The first error determines the ABCI code
// and the root cause.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(m), strings.Join(msgs, "; "))
}

func (m multiErr) Cause() error {
	return m[0]
}

func (m multiErr) ABCICode() uint32 {
	return ABCICode(m[0])
}

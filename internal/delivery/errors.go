package delivery

import "errors"

// ErrTransport is the sentinel matched via errors.Is for failures raised by
// the mail transport while dialing, negotiating or submitting a message.
var ErrTransport = errors.New("transport error")

// TransportError wraps a provider failure. Error returns the bare cause so
// failure reasons read cleanly in the run log, while errors.Is still matches
// ErrTransport through the Is hook.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ErrTransport.Error()
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// WrapTransport annotates an error so callers can detect transport failures.
func WrapTransport(err error) error {
	return &TransportError{Err: err}
}

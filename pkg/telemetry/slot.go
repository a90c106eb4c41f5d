package telemetry

// errorSlot holds the most recent recoverable failure of a run. A later
// failure replaces an earlier one; a nil error leaves the slot untouched.
type errorSlot struct {
	err error
}

func (s errorSlot) record(err error) errorSlot {
	if err == nil {
		return s
	}
	return errorSlot{err: err}
}

func (s errorSlot) message() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

package engine

// engineNotFoundError signals a missing engine binary for 404 mapping.
type engineNotFoundError struct{ path string }

func (e engineNotFoundError) Error() string { return "engine binary not found: " + e.path }

// ErrEngineNotFound constructs an engineNotFoundError.
func ErrEngineNotFound(path string) error { return engineNotFoundError{path: path} }

// IsEngineNotFound reports whether err indicates a missing engine binary.
func IsEngineNotFound(err error) bool {
	_, ok := err.(engineNotFoundError)
	return ok
}

// notReadyError signals an operation attempted before the handshake
// completed. Callers should wait for the ready event and retry.
type notReadyError struct{}

func (notReadyError) Error() string { return "engine not ready" }

// ErrNotReady constructs a notReadyError.
func ErrNotReady() error { return notReadyError{} }

// IsNotReady reports whether err indicates the handshake has not completed.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// searchBusyError signals an in-flight search for 429 mapping.
type searchBusyError struct{ kind string }

func (e searchBusyError) Error() string { return "search already in flight: " + e.kind }

// ErrSearchBusy constructs a searchBusyError.
func ErrSearchBusy(kind string) error { return searchBusyError{kind: kind} }

// IsSearchBusy reports whether err indicates a rejected concurrent search.
func IsSearchBusy(err error) bool {
	_, ok := err.(searchBusyError)
	return ok
}

// searchTimeoutError signals that no bestmove line arrived within
// budget+grace. The abort command has already been sent; a fresh request
// may be retried.
type searchTimeoutError struct{ kind string }

func (e searchTimeoutError) Error() string { return "search timed out: " + e.kind }

// ErrSearchTimeout constructs a searchTimeoutError.
func ErrSearchTimeout(kind string) error { return searchTimeoutError{kind: kind} }

// IsSearchTimeout reports whether err indicates an expired search budget.
func IsSearchTimeout(err error) bool {
	_, ok := err.(searchTimeoutError)
	return ok
}

// processError signals a process-level fault (spawn failure, abnormal exit).
type processError struct{ msg string }

func (e processError) Error() string { return e.msg }

// ErrProcess constructs a processError.
func ErrProcess(msg string) error { return processError{msg: msg} }

// IsProcessError reports whether err indicates a process-level fault.
func IsProcessError(err error) bool {
	_, ok := err.(processError)
	return ok
}

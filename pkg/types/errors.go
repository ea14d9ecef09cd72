package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindConfig     ErrKind = iota // bad or missing configuration file
	ErrKindIO                        // accessor read/write/sync failure
	ErrKindCorrupt                   // checksum mismatch on a stored copy
	ErrKindMalformed                 // structurally invalid payload
	ErrKindOverflow                  // encoded table exceeds region capacity
	ErrKindNoValidEnv                // no valid copy and no usable default
	ErrKindClosed                    // operation after Close
	ErrKindNotFound                  // missing variable
	ErrKindInvalid                   // bad variable name or value
	ErrKindState                     // invalid operation for current state (e.g., read-only)
)

var kindNames = [...]string{
	ErrKindConfig:     "config",
	ErrKindIO:         "io",
	ErrKindCorrupt:    "corrupt",
	ErrKindMalformed:  "malformed",
	ErrKindOverflow:   "overflow",
	ErrKindNoValidEnv: "no valid environment",
	ErrKindClosed:     "closed",
	ErrKindNotFound:   "not found",
	ErrKindInvalid:    "invalid",
	ErrKindState:      "state",
}

func (k ErrKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrCorrupt)
// works regardless of the message attached at the failure site.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrConfig indicates an unreadable or inconsistent configuration.
	ErrConfig = &Error{Kind: ErrKindConfig, Msg: "invalid configuration"}
	// ErrIO indicates the storage accessor failed.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "storage i/o failure"}
	// ErrCorrupt indicates a stored copy failed its checksum.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "environment checksum mismatch"}
	// ErrMalformed indicates a checksum-valid payload with broken structure.
	ErrMalformed = &Error{Kind: ErrKindMalformed, Msg: "malformed environment payload"}
	// ErrOverflow indicates the table does not fit in the configured region.
	ErrOverflow = &Error{Kind: ErrKindOverflow, Msg: "environment exceeds region size"}
	// ErrNoValidEnv indicates neither a stored copy nor a default could be loaded.
	ErrNoValidEnv = &Error{Kind: ErrKindNoValidEnv, Msg: "no valid environment"}
	// ErrClosed indicates the store was already closed.
	ErrClosed = &Error{Kind: ErrKindClosed, Msg: "environment store is closed"}
	// ErrNotFound indicates a missing variable.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrInvalid indicates a variable name or value that cannot be stored.
	ErrInvalid = &Error{Kind: ErrKindInvalid, Msg: "invalid variable"}
	// ErrReadonly indicates a persist was attempted on a read-only handle.
	ErrReadonly = &Error{Kind: ErrKindState, Msg: "environment opened read-only"}
)

// Wrap attaches kind and message to err. A nil err yields nil.
func Wrap(kind ErrKind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

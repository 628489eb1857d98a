package astar

// ErrorCategory is the fixed name every search error renders with.
const ErrorCategory = "AStar.Error"

// ErrorKind classifies why a search or one of its containers failed.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota + 1
	KindNoPath
	KindExpansionLimit
	KindCanceled
	KindEmptyQueue
	KindInvalidState
	KindInvalidConfig
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindTimeout:
		return "timeout"
	case KindNoPath:
		return "no_path"
	case KindExpansionLimit:
		return "expansion_limit"
	case KindCanceled:
		return "canceled"
	case KindEmptyQueue:
		return "empty_queue"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidConfig:
		return "invalid_config"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the package.
// errors.Is matches two *Error values by Kind, so callers compare against
// the sentinels below regardless of message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is.
var (
	ErrTimeout        = &Error{Kind: KindTimeout, Message: "Request timeout"}
	ErrNoPath         = &Error{Kind: KindNoPath, Message: "no path found"}
	ErrExpansionLimit = &Error{Kind: KindExpansionLimit, Message: "expansion limit reached"}
	ErrCanceled       = &Error{Kind: KindCanceled, Message: "search canceled"}
	ErrEmptyQueue     = &Error{Kind: KindEmptyQueue, Message: "dequeue on empty queue"}
	ErrInvalidState   = &Error{Kind: KindInvalidState, Message: "peek on empty path"}
	ErrInvalidConfig  = &Error{Kind: KindInvalidConfig, Message: "invalid configuration"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return ErrorCategory + ": " + e.Message + ": " + e.Err.Error()
	}
	return ErrorCategory + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

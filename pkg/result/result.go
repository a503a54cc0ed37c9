package result

import "strings"

// Result is the uniform success/failure value returned by all service
// write operations. A failed Result carries one or more human-readable
// messages; it never carries structured field detail.
type Result struct {
	ok       bool
	messages []string
}

// Ok returns a successful Result.
func Ok() Result {
	return Result{ok: true}
}

// Failure returns a failed Result carrying the given messages.
func Failure(messages ...string) Result {
	return Result{messages: messages}
}

// IsSuccess reports whether the operation succeeded.
func (r Result) IsSuccess() bool {
	return r.ok
}

// Errors returns the failure messages, empty for a successful Result.
func (r Result) Errors() []string {
	return r.messages
}

// Error returns the first failure message, or "" on success.
func (r Result) Error() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[0]
}

// String renders all messages joined with "; ".
func (r Result) String() string {
	if r.ok {
		return "success"
	}
	return strings.Join(r.messages, "; ")
}

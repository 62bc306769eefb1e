package api

import (
	"errors"
	"fmt"
)

// Kind distinguishes why a call failed.
type Kind int

const (
	// KindOther covers failures before a request was sent or after the
	// response arrived but could not be read.
	KindOther Kind = iota
	// KindServer means the service answered with a non-success status.
	KindServer
	// KindNetwork means no response was received.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "other"
	}
}

// User-facing messages.
const (
	MsgServer  = "server error"
	MsgNetwork = "network error, check your internet connection"
	MsgOther   = "an error occurred while performing the request"

	MsgArticles    = "failed to fetch articles"
	MsgArticle     = "failed to fetch article"
	MsgSources     = "failed to fetch news sources"
	MsgSourceNames = "failed to fetch news source names"
)

// Error is the only error type returned by Client methods.
type Error struct {
	Kind     Kind
	Endpoint string
	Status   int // 0 when no response was received
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail is the message plus the underlying cause, for logs.
func (e *Error) Detail() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Message, e.Err)
}

// KindOf returns the Kind of err, or KindOther if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Message returns the user-facing text for err. Errors that did not come
// from the client get the generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return MsgOther
}

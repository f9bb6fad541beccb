package todoapi

import (
	"context"
	"errors"
	"fmt"
)

// Op names a resource client operation.
type Op string

const (
	OpList       Op = "list"
	OpStatistics Op = "statistics"
	OpCreate     Op = "create"
	OpToggle     Op = "toggle"
	OpDelete     Op = "delete"
)

var genericMessages = map[Op]string{
	OpList:       "failed to fetch todos",
	OpStatistics: "failed to fetch statistics",
	OpCreate:     "failed to create todo",
	OpToggle:     "failed to toggle todo",
	OpDelete:     "failed to delete todo",
}

// FetchError is returned for any failed call: transport failure, non-2xx
// status, or an undecodable body. It is not subdivided further.
type FetchError struct {
	Op      Op
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-supplied detail, may be empty
	Err     error  // underlying transport or decode error, may be nil
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msg := genericMessages[e.Op]
	if msg == "" {
		msg = "request failed"
	}
	var te interface{ Timeout() bool }
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded), errors.As(e.Err, &te) && te.Timeout():
		return msg + ": request timed out"
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Detail returns the server-supplied message, if any.
func (e *FetchError) Detail() string { return e.Message }

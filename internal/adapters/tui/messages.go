package tui

import "time"

// MsgTaskStart announces a new task invocation.
type MsgTaskStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// MsgTaskLog carries output produced by a running invocation.
type MsgTaskLog struct {
	SpanID string
	Data   []byte
}

// MsgTaskComplete announces the end of a task invocation.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
	Cached  bool
}

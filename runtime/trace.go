package runtime

import (
	"encoding/json"
	"io"
	"sync"
)

// TraceEventKind defines the type of a trace event.
type TraceEventKind string

const (
	EventEnter TraceEventKind = "enter"
	EventExit  TraceEventKind = "exit"
	EventShow  TraceEventKind = "show"
	EventRead  TraceEventKind = "read"
)

// TraceEvent represents a single event in an execution trace.  Timestamps and
// durations are measured in evaluation steps.
type TraceEvent struct {
	Kind         TraceEventKind `json:"kind"`
	ParentID     int            `json:"parent_id,omitempty"`
	ID           int            `json:"id"`
	Timestamp    int            `json:"ts"`
	Duration     int            `json:"dur,omitempty"`
	Target       string         `json:"target,omitempty"`
	Arguments    []string       `json:"args,omitempty"`
	ReturnValue  string         `json:"ret,omitempty"`
	ErrorMessage string         `json:"err,omitempty"`
}

// TraceData is the top-level structure for a trace file.
type TraceData struct {
	EntryPoint string        `json:"entry_point"`
	Events     []*TraceEvent `json:"events"`
}

// ExecutionTracer records the execution flow of a single run.
type ExecutionTracer struct {
	mu     sync.Mutex
	Events []*TraceEvent
	nextID int
	stack  []int
}

// NewExecutionTracer creates a new tracer.
func NewExecutionTracer() *ExecutionTracer {
	return &ExecutionTracer{
		Events: make([]*TraceEvent, 0),
		nextID: 1,
		stack:  []int{0},
	}
}

func (t *ExecutionTracer) currentParentID() int {
	if len(t.stack) == 0 {
		return 0
	}
	return t.stack[len(t.stack)-1]
}

// Enter logs the entry into a function application, or an instantaneous
// show/read event.  It returns the ID of the newly created event.
func (t *ExecutionTracer) Enter(ts int, kind TraceEventKind, target string, args ...string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	eventID := t.nextID
	t.nextID++

	event := &TraceEvent{
		Kind:      kind,
		ID:        eventID,
		ParentID:  t.currentParentID(),
		Timestamp: ts,
		Target:    target,
		Arguments: args,
	}
	t.Events = append(t.Events, event)

	// Only applications open a scope; show and read are leaves.
	if kind == EventEnter {
		t.stack = append(t.stack, eventID)
	}

	return eventID
}

// Exit logs the return from the innermost open application.
func (t *ExecutionTracer) Exit(ts int, duration int, retVal Value, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Pop the corresponding "enter" event from the parent stack.
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}

	event := &TraceEvent{
		Kind:      EventExit,
		ID:        t.nextID,
		ParentID:  t.currentParentID(),
		Timestamp: ts,
		Duration:  duration,
	}
	t.nextID++

	if retVal != nil {
		event.ReturnValue = Render(retVal)
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}

	t.Events = append(t.Events, event)
}

// Data snapshots the recorded events.
func (t *ExecutionTracer) Data(entryPoint string) *TraceData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &TraceData{EntryPoint: entryPoint, Events: append([]*TraceEvent(nil), t.Events...)}
}

// WriteJSON writes the trace as indented JSON.
func (t *ExecutionTracer) WriteJSON(w io.Writer, entryPoint string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Data(entryPoint))
}

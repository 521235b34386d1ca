package runtime

import (
	"bytes"
	"io"
	"testing"

	"github.com/panyam/funsh/decl"
)

// QuietTest disables logging for the duration of a test
// Usage: defer QuietTest(t)()
func QuietTest(t *testing.T) func() {
	oldLevel := GetLogLevel()
	SetLogLevel(LogLevelOff)
	return func() {
		SetLogLevel(oldLevel)
	}
}

// CaptureLog swaps the global logger for one writing into the returned buffer.
func CaptureLog(t *testing.T, level LogLevel) (*bytes.Buffer, func()) {
	oldLogger := globalLogger
	buffer := &bytes.Buffer{}
	globalLogger = NewLogger(buffer, level)
	return buffer, func() {
		globalLogger = oldLogger
	}
}

// VerboseTest enables debug logging if test is run with -v flag
func VerboseTest(t *testing.T) func() {
	oldLevel := GetLogLevel()
	if testing.Verbose() {
		SetLogLevel(LogLevelDebug)
	}
	return func() {
		SetLogLevel(oldLevel)
	}
}

// recordingIO feeds canned input lines and records everything written.
type recordingIO struct {
	lines    []string
	shown    []Value
	running  []string
	results  []Value
	failures []error
}

func newRecordingIO(lines ...string) *recordingIO {
	return &recordingIO{lines: lines}
}

func (r *recordingIO) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *recordingIO) Show(v Value)           { r.shown = append(r.shown, v) }
func (r *recordingIO) Running(expr decl.Expr) { r.running = append(r.running, expr.String()) }
func (r *recordingIO) Result(v Value)         { r.results = append(r.results, v) }
func (r *recordingIO) Failure(err error)      { r.failures = append(r.failures, err) }

// eval runs expr in a fresh evaluator wired to rec.
func eval(t *testing.T, rec *recordingIO, expr decl.Expr) (Value, error) {
	t.Helper()
	if rec == nil {
		rec = newRecordingIO()
	}
	return NewSimpleEval(rec, rec).Evaluate(expr)
}

package runtime

import (
	"errors"

	"github.com/panyam/funsh/config"
	"github.com/panyam/funsh/decl"
)

// Runtime drives whole programs: it evaluates each one against a fresh
// environment and store and reports the outcome through its IO.
type Runtime struct {
	Config *config.Config
	IO     IO

	// Trace of the most recent run, when tracing is enabled.
	LastTrace *ExecutionTracer
}

// NewRuntime returns a runtime talking to io.  A nil cfg means
// config.Default().  The logger is package wide, so a non-empty cfg.LogLevel
// changes the level for every runtime in the process; an empty one leaves
// it alone.
func NewRuntime(cfg *config.Config, io IO) *Runtime {
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.LogLevel != "" {
		if level, err := ParseLogLevel(cfg.LogLevel); err != nil {
			Warn("ignoring log level: %v", err)
		} else {
			SetLogLevel(level)
		}
	}
	return &Runtime{Config: cfg, IO: io}
}

// Run evaluates expr and reports "running", then either the result or the
// failure.  Evaluation errors are reported and returned; anything else the
// evaluator raises is a bug and keeps unwinding.
func (r *Runtime) Run(expr decl.Expr) (Value, error) {
	Info("running: %s", expr)
	r.IO.Running(expr)

	eval := NewSimpleEval(r.IO, r.IO)
	if r.Config.Trace {
		eval.Tracer = NewExecutionTracer()
		r.LastTrace = eval.Tracer
	}
	val, err := eval.Evaluate(expr)
	if err != nil {
		var evalErr *EvalError
		if !errors.As(err, &evalErr) {
			panic(err)
		}
		Warn("run failed after %d steps: %v", eval.Steps(), err)
		r.IO.Failure(err)
		return nil, err
	}
	Debug("run finished after %d steps", eval.Steps())
	r.IO.Result(val)
	return val, nil
}

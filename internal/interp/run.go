package interp

import (
	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/errors"
	"github.com/flowbylang/flowby/internal/parser"
)

// RunSource is the embedding entry point: lex and parse source,
// fail on accumulated violations, execute, and fold the run into an
// ExitOutcome. `exit 0` (or falling off the end) yields Completed;
// `exit` with a non-zero code, a parse failure, or an uncaught runtime
// error yields Failed.
func RunSource(source, origin string, host action.Host, out Logger, opts ...Option) (errors.ExitOutcome, []*errors.FlowbyError) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	p := parser.New(source, origin)
	for name := range cfg.Globals {
		p.RegisterHostName(name)
	}
	prog := p.ParseProgram()
	if violations := p.Violations(); len(violations) > 0 {
		return errors.Failed(1, violations[0].Message), violations
	}

	opts = append(opts, WithOrigin(origin))
	in := New(host, out, opts...)
	if err := in.Run(prog); err != nil {
		fe := err.(*errors.FlowbyError)
		return errors.Failed(1, fe.Message), []*errors.FlowbyError{fe}
	}
	if code := in.ExitCode(); code != 0 {
		return errors.Failed(int(code), in.ExitMessage()), nil
	}
	return errors.Completed(), nil
}

// Package script drives an x_tree workspace from a line-oriented command
// file. Each node is bound to a name; every operation's display event is
// handed to a sink.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_log"
	"github.com/rskv-p/hier/pkg/x_tree"
	"github.com/rskv-p/hier/recover"
	"github.com/rskv-p/hier/sink"
)

// Runner executes parsed steps against its own workspace of named nodes.
type Runner struct {
	gen       *x_tree.IDGen
	nodes     map[string]x_tree.Node
	sink      sink.Sink
	out       io.Writer
	keepGoing bool
	base      *zerolog.Logger
	log       zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets where display events go. Defaults to sink.Discard.
func WithSink(s sink.Sink) Option {
	return func(r *Runner) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithOutput sets where dump writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithKeepGoing continues past failed steps and reports them all at the end.
func WithKeepGoing(on bool) Option {
	return func(r *Runner) { r.keepGoing = on }
}

// WithIDGen shares an identity source with other code.
func WithIDGen(g *x_tree.IDGen) Option {
	return func(r *Runner) {
		if g != nil {
			r.gen = g
		}
	}
}

// WithLogger pins the logger. Without it each Run logs through
// x_log.From(ctx).
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.base = &l }
}

// NewRunner returns a runner with an empty workspace. Identities start at 0.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		gen:   x_tree.NewIDGen(),
		nodes: map[string]x_tree.Node{},
		sink:  sink.Discard,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Node returns the node bound to name.
func (r *Runner) Node(name string) (x_tree.Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Names returns the bound names, sorted.
func (r *Runner) Names() []string {
	out := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run executes steps in order. A failed step followed by a matching
// expect-error is not a failure. Without keep-going the first failure
// stops the run; either way any failure is returned wrapped in
// constant.ErrStepsFailed.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	r.log = r.logger(ctx)

	var (
		fails   []error
		pending error
	)
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			if pending != nil {
				fails = append(fails, pending)
			}
			if len(fails) == 0 {
				return err
			}
			return errors.Join(err, r.failed(fails))
		}

		if st.Cmd == cmdExpectError {
			err := r.expectError(st, pending)
			pending = nil
			if err != nil {
				fails = append(fails, err)
				if !r.keepGoing {
					break
				}
			}
			continue
		}

		if pending != nil {
			fails = append(fails, pending)
			pending = nil
			if !r.keepGoing {
				break
			}
		}
		pending = r.step(st)
	}
	if pending != nil {
		fails = append(fails, pending)
	}

	if len(fails) == 0 {
		return nil
	}
	return r.failed(fails)
}

// failed logs each failure and wraps them in constant.ErrStepsFailed.
func (r *Runner) failed(fails []error) error {
	for _, err := range fails {
		r.log.Error().Err(err).Msg("step failed")
	}
	return fmt.Errorf("%w: %w", constant.ErrStepsFailed, errors.Join(fails...))
}

func (r *Runner) logger(ctx context.Context) zerolog.Logger {
	if r.base != nil {
		return *r.base
	}
	return x_log.From(ctx).With().Str("module", "script").Logger()
}

// RunScript parses src and runs it.
func (r *Runner) RunScript(ctx context.Context, src io.Reader) error {
	steps, err := Parse(src)
	if err != nil {
		return err
	}
	return r.Run(ctx, steps)
}

func (r *Runner) step(st Step) error {
	r.log.Debug().Int(constant.KeyLine, st.Line).Msg(st.String())
	err := validate(st)
	if err == nil {
		err = recover.Call("script", st.Cmd, func() error {
			return commands[st.Cmd].run(r, st)
		})
	}
	if err != nil {
		return &StepError{Line: st.Line, Cmd: st.Cmd, Err: err}
	}
	return nil
}

func (r *Runner) expectError(st Step, got error) error {
	fail := func(format string, args ...any) error {
		return &StepError{
			Line: st.Line,
			Cmd:  st.Cmd,
			Err:  fmt.Errorf("%w: "+format, append([]any{ErrExpectation}, args...)...),
		}
	}
	if err := validate(st); err != nil {
		return &StepError{Line: st.Line, Cmd: st.Cmd, Err: err}
	}
	if got == nil {
		return fail("want %s, previous step succeeded", st.Args[0])
	}
	if st.Args[0] == anyError {
		return nil
	}
	want, _ := LookupError(st.Args[0])
	if !errors.Is(got, want) {
		return fail("want %s, got %v", st.Args[0], got)
	}
	return nil
}

//---------------------
// Workspace Helpers
//---------------------

func (r *Runner) lookup(name string) (x_tree.Node, error) {
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return n, nil
}

func (r *Runner) bind(name string, n x_tree.Node) error {
	if _, ok := r.nodes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.nodes[name] = n
	return nil
}

// emit hands events to the sink. Sink failures are logged, never fatal.
func (r *Runner) emit(evs ...x_tree.DisplayEvent) {
	for _, ev := range evs {
		if err := r.sink.Emit(ev); err != nil {
			r.log.Warn().Err(err).Str(constant.KeyOp, string(ev.Op)).Msg("sink emit failed")
		}
	}
}

//---------------------
// Commands
//---------------------

func (r *Runner) doComposite(st Step) error {
	return r.bind(st.Args[0], r.gen.NewComposite())
}

func (r *Runner) doLeaf(st Step) error {
	return r.bind(st.Args[0], r.gen.NewLeaf())
}

func (r *Runner) doOp(st Step) error {
	n, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	r.emit(n.Operation())
	return nil
}

func (r *Runner) doAll(st Step) error {
	n, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	evs, err := n.OperationAll()
	r.emit(evs...)
	return err
}

func (r *Runner) doAdd(st Step) error {
	return r.pair(st, x_tree.Node.Add)
}

func (r *Runner) doRemove(st Step) error {
	return r.pair(st, x_tree.Node.Remove)
}

func (r *Runner) pair(st Step, op func(x_tree.Node, x_tree.Node) (x_tree.DisplayEvent, error)) error {
	parent, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	child, err := r.lookup(st.Args[1])
	if err != nil {
		return err
	}
	ev, err := op(parent, child)
	r.emit(ev)
	return err
}

func (r *Runner) doGet(st Step) error {
	parent, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(st.Args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	child, ev, err := parent.Child(idx)
	r.emit(ev)
	if err != nil {
		return err
	}
	if len(st.Args) == 3 {
		return r.bind(st.Args[2], child)
	}
	return nil
}

func (r *Runner) doRelease(st Step) error {
	n, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	r.emit(n.Release()...)
	return nil
}

func (r *Runner) doDump(st Step) error {
	n, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	x_tree.Dump(r.out, n)
	return nil
}

func (r *Runner) doExpectLen(st Step) error {
	n, err := r.lookup(st.Args[0])
	if err != nil {
		return err
	}
	want, err := strconv.Atoi(st.Args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if got := n.Len(); got != want {
		return fmt.Errorf("%w: %s has %d children, want %d", ErrExpectation, st.Args[0], got, want)
	}
	return nil
}

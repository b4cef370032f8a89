package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_log"
	"github.com/rskv-p/hier/pkg/x_tree"
)

// Console prints event texts one per line.
// Rejected operations are highlighted when the output is a terminal.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	force  bool
	closed bool

	okStyle   lipgloss.Style
	failStyle lipgloss.Style
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithNoColor disables styling regardless of the terminal.
func WithNoColor(noColor bool) ConsoleOption {
	return func(c *Console) {
		if noColor {
			c.color = false
			c.force = false
		}
	}
}

// WithColor forces ANSI styling on, e.g. for a pipe into a pager.
// A later WithNoColor(true) still wins.
func WithColor() ConsoleOption {
	return func(c *Console) { c.force = true }
}

// NewConsole builds a console sink writing to out (os.Stdout when nil).
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	if out == nil {
		out = os.Stdout
	}
	re := lipgloss.NewRenderer(out)
	c := &Console{
		out:       out,
		color:     IsTerminal(out),
		okStyle:   re.NewStyle().Foreground(lipgloss.Color(x_log.ColorGray10)),
		failStyle: re.NewStyle().Foreground(lipgloss.Color(x_log.ColorRed60)).Bold(true),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.force {
		c.color = true
		re.SetColorProfile(termenv.ANSI256)
	}
	return c
}

func (c *Console) Emit(ev x_tree.DisplayEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return constant.ErrSinkClosed
	}
	_, err := fmt.Fprintln(c.out, c.render(ev))
	return err
}

func (c *Console) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *Console) render(ev x_tree.DisplayEvent) string {
	if !c.color {
		return ev.Text
	}
	if ev.Failed() {
		return c.failStyle.Render(ev.Text)
	}
	return c.okStyle.Render(ev.Text)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

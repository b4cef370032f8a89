package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Step is one parsed script command.
type Step struct {
	Line int
	Cmd  string
	Args []string
}

func (s Step) String() string {
	return strings.TrimSpace(s.Cmd + " " + strings.Join(s.Args, " "))
}

// Parse reads one command per line. Blank lines and # comments are
// skipped. Every malformed line is reported, joined into one error.
func Parse(r io.Reader) ([]Step, error) {
	var (
		steps []Step
		errs  []error
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		parts, err := shlex.Split(sc.Text())
		if err != nil {
			errs = append(errs, &StepError{Line: line, Err: fmt.Errorf("%w: %v", ErrSyntax, err)})
			continue
		}
		if len(parts) == 0 {
			continue
		}
		st := Step{Line: line, Cmd: parts[0], Args: parts[1:]}
		if err := validate(st); err != nil {
			errs = append(errs, &StepError{Line: line, Cmd: st.Cmd, Err: err})
			continue
		}
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(errs) > 0 {
		return steps, errors.Join(errs...)
	}
	return steps, nil
}

// ParseString parses src as a script.
func ParseString(src string) ([]Step, error) {
	return Parse(strings.NewReader(src))
}

func validate(st Step) error {
	c, ok := commands[st.Cmd]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrSyntax, st.Cmd)
	}
	if n := len(st.Args); n < c.minArgs || n > c.maxArgs {
		return fmt.Errorf("%w: usage: %s", ErrSyntax, c.usage)
	}
	switch st.Cmd {
	case cmdGet:
		if _, err := strconv.Atoi(st.Args[1]); err != nil {
			return fmt.Errorf("%w: index %q is not an integer", ErrSyntax, st.Args[1])
		}
	case cmdExpectLen:
		if n, err := strconv.Atoi(st.Args[1]); err != nil || n < 0 {
			return fmt.Errorf("%w: length %q is not a non-negative integer", ErrSyntax, st.Args[1])
		}
	case cmdExpectError:
		if st.Args[0] == anyError {
			return nil
		}
		if _, ok := LookupError(st.Args[0]); !ok {
			return fmt.Errorf("%w: unknown error name %q", ErrSyntax, st.Args[0])
		}
	}
	return nil
}

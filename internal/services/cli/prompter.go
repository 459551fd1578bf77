package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads one line of operator input after showing a label.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// NewPrompter returns a line editor with name completion when stdin and
// stdout are terminals, and a plain line reader otherwise.
func NewPrompter(in *os.File, out *os.File, names []string) Prompter {
	if in == os.Stdin && out == os.Stdout && isatty.IsTerminal(in.Fd()) && isatty.IsTerminal(out.Fd()) {
		return NewLinePrompter(names)
	}
	return NewReaderPrompter(in, out)
}

// LinePrompter is a terminal prompt with history and completion of the first
// prompt's input against action names.
type LinePrompter struct {
	state *liner.State
}

// NewLinePrompter takes over the terminal until Close is called.
func NewLinePrompter(names []string) *LinePrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(Completer(names))
	return &LinePrompter{state: state}
}

// Prompt reads a line. Ctrl-C yields ErrAborted and Ctrl-D io.EOF.
func (p *LinePrompter) Prompt(label string) (string, error) {
	line, err := p.state.Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (p *LinePrompter) Close() error {
	return p.state.Close()
}

// ReaderPrompter prompts on out and reads lines from in.
type ReaderPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompter reads from in and writes labels to out.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	return &ReaderPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt returns the next line without its terminator. A final line without a
// newline is returned before io.EOF.
func (p *ReaderPrompter) Prompt(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (p *ReaderPrompter) Close() error { return nil }

// Completer returns the names that start with the typed line, sorted.
func Completer(names []string) liner.Completer {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return func(line string) []string {
		var matches []string
		for _, name := range sorted {
			if strings.HasPrefix(name, line) {
				matches = append(matches, name)
			}
		}
		return matches
	}
}

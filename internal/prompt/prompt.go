package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUserCancelled is returned when the user declines a confirmation that
// the run cannot continue without.
var ErrUserCancelled = errors.New("cancelled by user")

// affirmative lists the exact answers accepted as "yes". The empty answer
// accepts the [Y/n] default.
var affirmative = map[string]bool{
	"":    true,
	"Y":   true,
	"y":   true,
	"yes": true,
	"ye":  true,
}

// Confirmer asks yes/no questions
type Confirmer interface {
	// Confirm returns true when the answer is affirmative
	Confirm(question string) (bool, error)
}

// Asker asks free-text questions
type Asker interface {
	// Ask returns the answer without its line terminator
	Ask(question string) (string, error)
}

// IsAffirmative reports whether an answer counts as "yes"
func IsAffirmative(answer string) bool {
	return affirmative[answer]
}

// Console asks questions on a text stream, typically stdin/stdout
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console reading answers from in and writing questions to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask writes the question and reads one line of input
func (c *Console) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(c.out, question); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		// A final line without a newline is still an answer
		if !errors.Is(err, io.EOF) || line == "" {
			return "", fmt.Errorf("reading answer: %w", err)
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks the question and checks the answer against the accepted tokens
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.Ask(question)
	if err != nil {
		return false, err
	}
	return IsAffirmative(answer), nil
}

// Static answers every confirmation with the same value
type Static bool

// Confirm returns the static answer
func (s Static) Confirm(string) (bool, error) {
	return bool(s), nil
}

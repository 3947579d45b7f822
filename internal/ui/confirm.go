package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks Y/n questions on a line-oriented console
type Prompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewPrompter reads answers from in. With assumeYes every question is accepted unasked.
func NewPrompter(in io.Reader, out io.Writer, assumeYes bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// Confirm prints prompt and reads one line. An empty answer, "y" or "yes" accept;
// anything else, including end of input, declines.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintln(p.out, prompt)
	if p.assumeYes {
		fmt.Fprintln(p.out, "y")
		return true, nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return false, nil
	}
	return Accepts(line), nil
}

// Accepts reports whether answer is an affirmative reply to a Y/n prompt
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

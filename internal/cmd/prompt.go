package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints label and reads one line of input without its line break.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) askIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.ask(label)
}

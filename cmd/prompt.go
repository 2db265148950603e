package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// terminalPrompter prints alerts and asks confirmations on the terminal.
type terminalPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalPrompter(in io.Reader, out io.Writer, assumeYes bool) *terminalPrompter {
	return &terminalPrompter{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
	}
}

func (p *terminalPrompter) Alert(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p *terminalPrompter) Confirm(msg string) bool {
	if p.assumeYes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N] ", msg)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

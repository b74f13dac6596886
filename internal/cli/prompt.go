package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mkovacs/financ/internal/domain/external"
	"github.com/mkovacs/financ/internal/domain/fixup"
)

// PromptResponder asks the operator on the terminal whether to create
// a ledger transaction for each candidate. Answers: y(es), n(o),
// a(ll remaining), q(uit).
type PromptResponder struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptResponder creates a responder reading from in and writing
// prompts to out.
func NewPromptResponder(in io.Reader, out io.Writer) *PromptResponder {
	return &PromptResponder{in: bufio.NewReader(in), out: out}
}

// Confirm implements fixup.Responder.
func (p *PromptResponder) Confirm(tx external.Transaction) (fixup.Response, error) {
	for {
		fmt.Fprintf(p.out, "create %s ? [y/n/a/q] ", tx)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			// EOF on stdin: treat as quit rather than looping forever.
			if err == io.EOF {
				return fixup.Abort, nil
			}
			return fixup.Abort, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return fixup.Accept, nil
		case "n", "no":
			return fixup.Skip, nil
		case "a", "all":
			return fixup.AcceptAll, nil
		case "q", "quit":
			return fixup.Abort, nil
		}
		fmt.Fprintln(p.out, "please answer y, n, a or q")
	}
}

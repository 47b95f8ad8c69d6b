package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rorical/RoriShell/internal/proposal"
	"github.com/Rorical/RoriShell/internal/risk"
	"github.com/Rorical/RoriShell/internal/utils"
)

// ConsoleConfirmer renders the proposal and blocks on a single yes/no line.
// Anything other than "y"/"yes" (case-insensitive) declines; there is no
// re-prompt on unrecognized input.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c *ConsoleConfirmer) Confirm(p *proposal.Proposal, v risk.Verdict) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, utils.CommandStyle().Render("  "+p.Command))
	if p.Explanation != "" {
		fmt.Fprintln(out, utils.ExplanationStyle().Render("  "+p.Explanation))
	}
	for _, a := range p.Arguments {
		fmt.Fprintf(out, "%s  %s\n",
			utils.ArgStyle().Render(a.Arg),
			utils.ReasonStyle().Render(a.Reason))
	}
	fmt.Fprintln(out, "  "+riskLine(v))
	fmt.Fprint(out, "Run this command? [y/N] ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func riskLine(v risk.Verdict) string {
	text := fmt.Sprintf("Risk: %d/%d", v.FinalLevel, risk.MaxLevel)
	if v.PatternFlag {
		text += " (matches a destructive pattern)"
	}
	switch {
	case v.FinalLevel <= 2:
		return utils.RiskLowStyle().Render(text)
	case v.FinalLevel == risk.BlockThreshold-1:
		return utils.RiskWarnStyle().Render(text + ", review carefully")
	default:
		return utils.RiskHighStyle().Render(text)
	}
}

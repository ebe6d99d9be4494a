package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/shibukawa/planexplain/explain"
)

func printPerformanceWarnings(ctx *Context, evaluation *explain.Evaluation) {
	if ctx.Quiet || evaluation == nil {
		return
	}

	out := ctx.out()

	if len(evaluation.Warnings) == 0 {
		if ctx.Verbose {
			fmt.Fprintf(out, "\n%s no performance warnings\n", color.New(color.Bold, color.FgGreen).Sprint("OK"))
		}

		return
	}

	warnLabel := color.New(color.Bold, color.FgYellow).Sprint("WARN")

	fmt.Fprintln(out, "\nPerformance warnings:")

	for _, warn := range evaluation.Warnings {
		message := warn.Message
		if len(warn.Tables) > 0 {
			message = fmt.Sprintf("%s (tables=%s)", message, strings.Join(warn.Tables, ", "))
		}

		fmt.Fprintf(out, "  %s %s\n", warnLabel, message)

		if ctx.Verbose {
			fmt.Fprintf(out, "       %s\n", warn.Detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d/time.Microsecond)
	}

	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}

	return d.Round(time.Millisecond).String()
}

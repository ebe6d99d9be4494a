package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/shibukawa/planexplain"
	"github.com/shibukawa/planexplain/cli"
)

var version = "v0.1.0"

// CLI represents the command-line interface
var CLI struct {
	Config   string          `help:"Configuration file path" default:"${default_config}"`
	Verbose  bool            `help:"Enable verbose output" short:"v"`
	Quiet    bool            `help:"Suppress output" short:"q"`
	Explain  cli.ExplainCmd  `cmd:"" help:"Show the SQLite query plan of a statement"`
	Check    cli.CheckCmd    `cmd:"" help:"Compare query plans against fixture files"`
	Validate cli.ValidateCmd `cmd:"" help:"Validate fixture files"`
	Version  VersionCmd      `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("planexplain " + version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("planexplain"),
		kong.Description("Inspect SQLite EXPLAIN QUERY PLAN output."),
		kong.Vars{"default_config": planexplain.DefaultConfigFile},
	)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if cli.IsUsageError(err) {
			_ = ctx.PrintUsage(true)
		}

		os.Exit(1)
	}
}

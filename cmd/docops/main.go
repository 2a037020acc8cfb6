package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docops/cmd/docops/commands"
	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
	"git.home.luguber.info/inful/docops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the process exit code.
func run(args []string) int {
	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("docops"),
		kong.Description("Versioned documentation deploys and API reference page generation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global := commands.NewGlobal(ctx, cli, kctx.Command())
	err = kctx.Run(global, cli)
	if ferr := global.Finish(); ferr != nil {
		slog.Warn("Failed to write metrics", "error", ferr)
	}

	code := 0
	adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithExit(func(c int) { code = c })
	adapter.HandleError(err)
	return code
}

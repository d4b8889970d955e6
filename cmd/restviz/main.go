package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/restviz/cmd/restviz/commands"
	rverrors "git.home.luguber.info/inful/restviz/internal/errors"
	"git.home.luguber.info/inful/restviz/internal/version"
)

var cli commands.CLI

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	kctx := kong.Parse(&cli,
		kong.Name("restviz"),
		kong.Description("Generate REST resource visualization data for a project."),
		kong.UsageOnError(),
		kong.Vars{
			"version": version.String(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	err := kctx.Run(&commands.Global{Stdout: os.Stdout}, &cli)
	stop()
	if err != nil {
		rverrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

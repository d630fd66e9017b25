package main

import (
	"context"
	"os"

	"github.com/Makepad-fr/impact/internal/cli"
	"github.com/Makepad-fr/impact/internal/tui"
	"github.com/Makepad-fr/impact/internal/ui"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
)

func main() {
	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
		RunTUI:    tui.Run,
		AskAction: cli.AskAction,
	}

	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		_ = app.Close()
		ui.Fail(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

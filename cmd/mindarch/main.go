package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mindarch/mindarch/internal/cli"
	"github.com/mindarch/mindarch/internal/store"
	"github.com/mindarch/mindarch/internal/tui"
)

func main() {
	// If no args, launch TUI; otherwise route to CLI
	if len(os.Args) == 1 {
		if err := runTUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}

func runTUI() error {
	application, err := cli.BuildTUIApp()
	if err != nil {
		return err
	}

	// No saved plan just means the generator form opens first.
	if _, err := application.Load(context.Background()); err != nil && !errors.Is(err, store.ErrNoPlan) {
		return err
	}
	return tui.Run(application)
}

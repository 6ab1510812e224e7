// Package main provides the entry point for the wyrand CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/opd-ai/go-wyrand/cmd/wyrand/commands"
	"github.com/opd-ai/go-wyrand/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	env := &commands.Env{
		Config: cfg,
		Log:    logger,
		Fs:     afero.NewOsFs(),
		In:     os.Stdin,
		Out:    os.Stdout,
	}

	err = commands.NewRootCommand(env).Execute()
	if err != nil {
		logger.Error("command failed", zap.Error(err))
	}

	// Sync on a terminal stderr can fail harmlessly; nothing to report.
	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dazzle-lang/dazzle/cli"
)

var (
	version = "dev"
	date    = "unknown"
)

func main() {
	ctx := context.Background()

	rootCmd := cli.NewRootCommand(version, date)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("compile failed", "error", err)
		os.Exit(1)
	}
}

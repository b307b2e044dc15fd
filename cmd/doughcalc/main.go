// doughcalc is a pizza dough calculator in baker's percentages.
//
// Usage:
//
//	doughcalc [tui|calc|link|presets] [flags]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/doughcalc/internal/cli"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx, os.Args)
}

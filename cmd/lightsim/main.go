// Program lightsim runs a simulated traffic light with a number of vehicles
// that wait for it to turn green before crossing.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Version is reported by --version. It is set at link time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kong.Parse(&cli,
		kong.Name("lightsim"),
		kong.Description("Simulate a traffic light and the vehicles waiting at it."),
		kong.Vars{"version": Version},
	)
	if err := cli.Run(ctx); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// tcpopt is a one-shot TCP client which shows how socket options are
// tuned: Nagle algorithm is disabled, kernel buffers get explicit hints.
// It connects, sends a message, waits for a response and echoes it back.
//
// It also ships a reference peer (serve) and a reachability check (ping).
package main

import (
	"runtime/debug"

	"github.com/alecthomas/kong"
	"github.com/elearning/tcpopt/internal/cli"
)

var version = "dev" // has to be set by ldflags

func main() {
	cli := &cli.CLI{}
	ctx := kong.Parse(cli, kong.Vars{
		"version": getVersion(),
	})

	ctx.FatalIfErrorf(ctx.Run(cli, version))
}

func getVersion() string {
	if version != "dev" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return version
}

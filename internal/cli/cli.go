package cli

import "github.com/alecthomas/kong"

type CLI struct {
	Run       Run              `kong:"cmd,help='Run client with a config file.'"`
	SimpleRun SimpleRun        `kong:"cmd,help='Run client without config file.'"`
	Serve     Serve            `kong:"cmd,help='Run a reference peer which responds and checks the echo.'"`
	Ping      Ping             `kong:"cmd,help='Check that endpoint accepts TCP connections.'"`
	Version   kong.VersionFlag `kong:"help='Print version.',short='v'"`
}

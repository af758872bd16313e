package cmd

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI represents the root command structure for Kong.
type CLI struct {
	// Global flags (apply to all commands)
	Verbose bool `help:"Enable verbose output" name:"verbose" short:"v"` //nolint:lll,revive // Kong struct tag

	// Commands
	Format     FormatCmd                 `cmd:"" default:"withargs" help:"Reformat source files"` //nolint:lll,revive // Kong struct tag with alignment
	Version    VersionCmd                `cmd:"" help:"Show version info"`                         //nolint:lll,revive // Kong struct tag with alignment
	Completion kongcompletion.Completion `cmd:"" help:"Generate completions"`                      //nolint:lll,revive // Kong struct tag with alignment
}

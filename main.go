// Package main is the entry point for the streamdex application.
package main

import (
	"github.com/samber/lo"

	"github.com/streamdex-cli/streamdex/cmd"
	"github.com/streamdex-cli/streamdex/config"
	"github.com/streamdex-cli/streamdex/internal/cache"
	"github.com/streamdex-cli/streamdex/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired result snapshots are swept in the background on startup.
	go cache.CollectGarbage()

	cmd.Execute()
}

// Package main is the entry point for the kaiwa CLI.
//
// Usage:
//
//	kaiwa [flags] <command> [subcommand] [args]
//
// Commands:
//
//	config    - Configuration management (contexts, services)
//	call      - Start a live voice session
//	settings  - Studio settings (get, set)
//	memory    - Long-term memory (list, add, search, context)
//	simulate  - Environment simulator (geofence, notify, locations)
//	calendar  - Google Calendar (events)
//	history   - Call history (list, show)
//	version   - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/kaiwastudio/kaiwa/cmd/kaiwa/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main is the entry point for the meetscribe CLI.
//
// Usage:
//
//	meetscribe <command> [flags]
//
// Commands:
//
//	run       - Record and transcribe a meeting until interrupted
//	devices   - List audio input devices
//	sessions  - List recorded sessions
//	export    - Re-export the document for a stored session
package main

import (
	"fmt"
	"os"

	"github.com/user/meetscribe/cmd/meetscribe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

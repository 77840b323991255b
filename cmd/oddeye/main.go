package main

import (
	"fmt"
	"os"

	"github.com/oddeye/oddeye/cmd/oddeye/commands"
	serversvc "github.com/oddeye/oddeye/pkg/server"
)

// Exit codes:
//   - 0: Success
//   - 1: General or runtime error
//   - 2: Invalid configuration (missing or malformed key, bad port)
//   - 7: Server failed to initialize
func main() {
	err := commands.NewCommand().Execute()
	if err == nil {
		return
	}

	if !commands.Reported(err) {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(serversvc.ExitCode(err))
}

// ABOUTME: Entry point for the nullpointer CLI
// ABOUTME: Command-line client for the NullPointer e-learning platform

package main

import (
	"fmt"
	"os"

	"github.com/Katya1803/nullpointer-cli/cmd"
	"github.com/Katya1803/nullpointer-cli/logger"
)

func main() {
	logger.Init()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

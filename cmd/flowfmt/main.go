package main

import (
	"os"

	"github.com/flowlang/flowfmt/internal/cli/commands"
	"github.com/flowlang/flowfmt/internal/format"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	commands.Version = Version
	commands.GitCommit = GitCommit
	commands.BuildDate = BuildDate
	commands.GoVersion = GoVersion

	err := commands.Execute()
	if err != nil && commands.LastExitCode == format.NoChange {
		commands.LastExitCode = format.Error
	}
	os.Exit(int(commands.LastExitCode))
}

// Command oliva maintains the daily history of Spanish olive oil origin prices.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/oliveprice/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Answers the shell and exits when called for completion.
	cmd.Completion(commander, flag.CommandLine).Complete("oliva")

	flag.Parse()

	// Unknown subcommands are looked up as oliva-<name> extensions.
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

package cmd

import (
	"flag"

	"github.com/etnz/oliveprice/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts the values of flags by name.
var flagPredictors = map[string]complete.Predictor{
	"config":     predict.Files("*.yaml"),
	"log":        predict.Files("*"),
	"snapshot":   predict.Files("*.json"),
	"o":          predict.Files("*.json"),
	"layout":     predict.Set{"block", "free", "inline"},
	"convention": predict.Set{"comma", "dot", "lenient"},
}

// Completion describes the commands of c and their flags for shell completion.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		f := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(f)
		cc := &complete.Command{Flags: predictFlags(f)}
		switch sub.Name() {
		case "check":
			cc.Args = predict.Files("*")
		case "topic":
			if topics, err := docs.GetAllTopics(); err == nil {
				cc.Args = predict.Set(topics)
			}
		}
		root.Sub[sub.Name()] = cc
	})
	return root
}

func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// IsCommand reports whether name is a registered subcommand of c.
func IsCommand(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		found = found || sub.Name() == name
	})
	return found
}

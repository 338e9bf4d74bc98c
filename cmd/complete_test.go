package cmd

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("oliva", flag.ContinueOnError)
	top.String("config", "", "")
	top.Bool("v", false, "")
	c := subcommands.NewCommander(top, "oliva")
	Register(c)

	root := Completion(c, top)
	for _, name := range []string{"reconcile", "today", "summary", "check", "fetch", "append", "update", "schedule", "runs", "assist", "topic"} {
		if _, ok := root.Sub[name]; !ok {
			t.Errorf("Completion() has no %q subcommand", name)
		}
	}
	if _, ok := root.Flags["config"]; !ok {
		t.Errorf("Completion() has no -config flag")
	}

	layout := root.Sub["reconcile"].Flags["layout"]
	if layout == nil {
		t.Fatalf("Completion() has no reconcile -layout flag")
	}
	if diff := cmp.Diff([]string{"block", "free", "inline"}, layout.Predict("")); diff != "" {
		t.Errorf("reconcile -layout predictions mismatch (-want +got):\n%s", diff)
	}
	if root.Sub["check"].Args == nil {
		t.Errorf("Completion() check has no argument predictor")
	}
	if diff := cmp.Diff([]string{"config", "conventions", "dates", "layouts"}, root.Sub["topic"].Args.Predict("")); diff != "" {
		t.Errorf("topic predictions mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCommand(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("oliva", flag.ContinueOnError), "oliva")
	Register(c)
	if !IsCommand(c, "reconcile") {
		t.Errorf("IsCommand(reconcile) = false, want true")
	}
	if IsCommand(c, "hello") {
		t.Errorf("IsCommand(hello) = true, want false")
	}
}

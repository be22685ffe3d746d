package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/zeebo/clingy"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ok, err := clingy.Environment{
		Name: "featurecheck",
		Args: os.Args[1:],
	}.Run(ctx, func(cmds clingy.Commands) {
		cmds.New("analyze", "check the features used by a page against the target engine", new(cmdAnalyze))
		cmds.New("lookup", "show the target engine support of a feature", new(cmdLookup))
		cmds.New("names", "print a feature name table", new(cmdNames))
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if !ok || err != nil {
		os.Exit(1)
	}
}

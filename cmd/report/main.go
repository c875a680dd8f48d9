package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vfg2006/fi-dashboard/internal/cli/commands"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

func main() {
	// fallback warnings are printed by the commands themselves
	log.Configure("error")

	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

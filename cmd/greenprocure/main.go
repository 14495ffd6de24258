package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/greenprocure/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "[greenprocure] Error: %v\n", err)
		os.Exit(1)
	}
}

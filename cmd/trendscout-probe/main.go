// Command trendscout-probe talks to a running agent over the Open Floor endpoint
package main

import (
	"context"
	"fmt"
	"os"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	if err := NewRootCmd(version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "trendscout-probe:", err)
		os.Exit(1)
	}
}

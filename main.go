package main

import (
	"fmt"
	"os"

	"countrypick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "countrypick: %v\n", err)
		os.Exit(1)
	}
}

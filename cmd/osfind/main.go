package main

import (
	"fmt"
	"os"

	"github.com/Ning0612/osfind/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()
	rootCmd.SetArgs(cli.NormalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/example/collcheck/internal/cli"
	"github.com/example/collcheck/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.Version = version.String()

	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

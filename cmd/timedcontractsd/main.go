package main

import (
	"os"

	"github.com/tempo-labs/timed-contracts/cmd/timedcontractsd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

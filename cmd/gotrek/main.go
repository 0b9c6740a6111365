package main

import (
	"os"

	"github.com/gotrek/gotrek/cmd/gotrek/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

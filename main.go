package main

import (
	"os"

	"github.com/mattsolo1/grove-sidebar/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/gabriel447/ProductExplorer/cmd/explorer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

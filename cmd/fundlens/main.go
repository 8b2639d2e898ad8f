package main

import (
	"os"

	"github.com/fundlens/backend/cmd/fundlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

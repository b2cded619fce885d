package main

import (
	"os"

	"icauth/go-backend/cmd/icauth/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/dmitrymomot/asynctask/internal/fanout"
)

func main() {
	if err := fanout.NewRootCommand().Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

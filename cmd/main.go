package main

import (
	"os"

	"live-quiz-show/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/eduai/eduai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

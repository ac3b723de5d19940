package main

import (
	"os"

	"github.com/pjanik/dayplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

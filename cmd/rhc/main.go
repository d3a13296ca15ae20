package main

import (
	"os"

	"github.com/bnema/rural-health-connect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

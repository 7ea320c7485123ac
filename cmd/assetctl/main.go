package main

import (
	"os"

	"github.com/assetforge/assetctl/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/custodiet/promokit/cmd/promokit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

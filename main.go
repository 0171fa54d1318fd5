package main

import (
	"os"

	"github.com/networkout/networkout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/apointeau/hdfstate/cmd/hdfstate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

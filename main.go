package main

import (
	"os"

	"github.com/uniassist/uniassist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

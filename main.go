package main

import (
	"clementus360/edu-copilot/cli"
	"os"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

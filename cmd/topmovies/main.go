package main

import (
	"os"

	"github.com/binhbb2204/Top-Movies/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
}

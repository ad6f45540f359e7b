package main

import (
	"os"

	"github.com/chad-schroeder/blogly/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

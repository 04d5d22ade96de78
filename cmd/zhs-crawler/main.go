package main

import (
	"os"

	"github.com/leo9226/zhs-crawler/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}

package main

import (
	"os"

	"github.com/deri-protocol/deri-deploy/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

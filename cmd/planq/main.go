package main

import (
	"os"

	"github.com/schichtkit/planq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

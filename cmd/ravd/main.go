package main

import (
	"os"

	"github.com/ignatzorin/ravd-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

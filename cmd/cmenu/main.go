package main

import (
	"os"

	"cmenu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

package main

import (
	"os"

	"github.com/leengari/lexitab/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

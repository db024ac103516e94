package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/patchstorage/patchbot/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

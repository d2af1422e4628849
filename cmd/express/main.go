package main

import (
	"os"

	"github.com/simonhull/expressgen/internal/commands"
	experrors "github.com/simonhull/expressgen/internal/errors"
	"github.com/simonhull/expressgen/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		output.Hint(experrors.Hint(err))
		os.Exit(1)
	}
}

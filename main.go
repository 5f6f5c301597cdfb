package main

import (
	"os"

	"github.com/cristianoliveira/molmark/cmd"
	"github.com/cristianoliveira/molmark/internal/errors"
)

func main() {
	os.Exit(run(cmd.Execute, errors.NewDefaultCLIHandler()))
}

// run executes the CLI and maps failures to exit code 1.
func run(execute func() error, handler errors.Handler) int {
	if err := execute(); err != nil {
		handler.Error(err.Error())
		return 1
	}
	return 0
}

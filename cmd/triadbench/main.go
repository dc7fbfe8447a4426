// Command triadbench measures sustainable memory bandwidth with the STREAM
// triad kernel and prints the vector footprint in kB and the MFLOPS rate.
package main

import (
	"context"
	"os"

	"github.com/agbru/triadbench/internal/app"
	"github.com/agbru/triadbench/internal/cli"
	apperrors "github.com/agbru/triadbench/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		cli.PrintError(os.Stderr, err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}

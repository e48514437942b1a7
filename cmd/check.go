package cmd

import (
	"fmt"

	"github.com/urfave/cli"
	"github.com/warpdl/sqlitejar/pkg/sqlitejar"
)

func check(ctx *cli.Context) error {
	path, err := storePath(ctx)
	if err != nil {
		return err
	}
	format, err := sqlitejar.ValidatePath(path)
	fmt.Fprintf(ctx.App.Writer, "%s: %s\n", path, format)
	return err
}

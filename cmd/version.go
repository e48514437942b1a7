package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

var versionString string

func getVersion(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, versionString)
	return nil
}

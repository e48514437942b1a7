package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/warpdl/sqlitejar/internal/netscape"
)

func exportCookies(ctx *cli.Context) error {
	dst := ctx.Args().First()
	if dst == "" {
		return errors.New("export: missing destination path")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.Load()
	if err != nil {
		return err
	}
	if err := netscape.WriteFile(appFs, dst, records); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "exported %d cookies to %s\n", len(records), dst)
	return nil
}

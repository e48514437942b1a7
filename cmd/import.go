package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/warpdl/sqlitejar/internal/netscape"
)

var importFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "strict",
		Usage: "fail instead of skipping malformed lines (default: false)",
	},
}

func importCookies(ctx *cli.Context) error {
	src := ctx.Args().First()
	if src == "" {
		return errors.New("import: missing path to a cookies.txt file")
	}

	imported, skipped, err := netscape.ReadFile(appFs, src)
	if err != nil {
		return err
	}
	lg := newLogger(ctx)
	if skipped != nil {
		if ctx.Bool("strict") {
			return fmt.Errorf("import: %s has malformed lines: %w", src, skipped.ErrorOrNil())
		}
		for _, e := range skipped.Errors {
			lg.Warning("%s: skipping %v", src, e)
		}
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	existing, err := s.Load()
	if err != nil {
		return err
	}
	// Save keeps the last record per key, so imported cookies replace
	// existing ones.
	if err := s.Save(append(existing, imported...)); err != nil {
		return err
	}
	n, err := s.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "read %d cookies from %s, %d stored in %s\n", len(imported), src, n, s.Path())
	return nil
}

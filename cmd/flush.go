package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

func flush(ctx *cli.Context) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	before, err := s.Count()
	if err != nil {
		return err
	}
	live, err := s.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "flushed %d expired cookies, %d remain\n", before-len(live), len(live))
	return nil
}

package cmd

import (
	"log"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/warpdl/sqlitejar/pkg/logger"
	"github.com/warpdl/sqlitejar/pkg/sqlitejar"
)

var (
	appFs   afero.Fs = afero.NewOsFs()
	timeNow          = time.Now
)

// newLogger logs warnings and errors to the app's error writer, and every
// cookie operation with --verbose.
func newLogger(ctx *cli.Context) logger.Logger {
	l := logger.NewStandardLogger(log.New(ctx.App.ErrWriter, "", log.LstdFlags))
	if ctx.GlobalBool("verbose") {
		return l
	}
	return logger.NewLevelLogger(l, logger.LevelWarning)
}

func openStore(ctx *cli.Context) (*sqlitejar.Store, error) {
	return sqlitejar.Open(&sqlitejar.Options{
		Path:   ctx.GlobalString("file"),
		Logger: newLogger(ctx),
		Clock:  timeNow,
	})
}

// storePath resolves the --file flag without opening the store.
func storePath(ctx *cli.Context) (string, error) {
	if p := ctx.GlobalString("file"); p != "" {
		return p, nil
	}
	return sqlitejar.DefaultPath()
}

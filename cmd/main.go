// Package cmd implements the sqlitejar command line tool.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// BuildArgs carries build-time information into the version command.
type BuildArgs struct {
	Version   string
	Commit    string
	Date      string
	BuildType string
}

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "file, f",
		Usage:  "path to the cookie store (default: ~/go-cookies.sqlite)",
		EnvVar: envFile,
	},
	cli.BoolFlag{
		Name:  "verbose, V",
		Usage: "log every cookie loaded and saved (default: false)",
	},
}

// Execute runs the command line tool with the given os.Args-style arguments.
func Execute(args []string, bArgs BuildArgs) error {
	versionString = fmt.Sprintf("sqlitejar %s (%s) commit=%s date=%s", bArgs.Version, bArgs.BuildType, bArgs.Commit, bArgs.Date)

	app := cli.App{
		Name:                  "sqlitejar",
		HelpName:              "sqlitejar",
		Usage:                 "A SQLite-backed HTTP cookie store.",
		Version:               bArgs.Version,
		UsageText:             "sqlitejar [global options] <command> [arguments...]",
		Description:           description,
		CustomAppHelpTemplate: helpTemplate,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags:                 globalFlags,
		Commands: []cli.Command{
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "display the live cookies",
				Description:        listDescription,
				CustomHelpTemplate: cmdHelpTemplate,
				Action:             list,
				Flags:              listFlags,
			},
			{
				Name:               "import",
				Aliases:            []string{"i"},
				Usage:              "merge a Netscape cookies.txt file into the store",
				UsageText:          "import [--strict] <cookies.txt>",
				Description:        importDescription,
				CustomHelpTemplate: cmdHelpTemplate,
				Action:             importCookies,
				Flags:              importFlags,
			},
			{
				Name:               "export",
				Aliases:            []string{"e"},
				Usage:              "write the live cookies to a Netscape cookies.txt file",
				UsageText:          "export <cookies.txt>",
				Description:        exportDescription,
				CustomHelpTemplate: cmdHelpTemplate,
				Action:             exportCookies,
			},
			{
				Name:               "flush",
				Aliases:            []string{"c"},
				Usage:              "remove expired cookies from the store",
				Description:        flushDescription,
				CustomHelpTemplate: cmdHelpTemplate,
				Action:             flush,
			},
			{
				Name:               "check",
				Usage:              "report the format of the store file",
				Description:        checkDescription,
				CustomHelpTemplate: cmdHelpTemplate,
				Action:             check,
			},
			{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "prints the installed version",
				Action:  getVersion,
			},
		},
		HideVersion: true,
	}
	return app.Run(args)
}

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/net/publicsuffix"
)

var listFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "site, s",
		Usage: "only list cookies belonging to this site (registrable domain)",
	},
	cli.BoolFlag{
		Name:  "show-values",
		Usage: "print cookie values instead of masking them (default: false)",
	},
}

func list(ctx *cli.Context) error {
	var site string
	if s := ctx.String("site"); s != "" {
		site = siteOf(s)
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

	w := tabwriter.NewWriter(ctx.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tPATH\tNAME\tVALUE\tSECURE\tHTTPONLY\tEXPIRES")
	n := 0
	for _, r := range records {
		if site != "" && siteOf(r.Domain) != site {
			continue
		}
		value := maskValue(r.Value)
		if ctx.Bool("show-values") {
			value = r.Value
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%t\t%s\n",
			r.Domain, r.Path, r.Name, value, r.Secure, r.HttpOnly, r.Expires.UTC().Format(time.RFC3339))
		n++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%d cookies\n", n)
	return nil
}

// siteOf returns the registrable domain of host, or host itself when the
// public suffix list cannot derive one (e.g. localhost).
func siteOf(host string) string {
	host = strings.ToLower(strings.TrimPrefix(host, "."))
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

func maskValue(v string) string {
	if v == "" {
		return ""
	}
	return "****"
}

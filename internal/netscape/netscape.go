// Package netscape reads and writes Netscape cookies.txt files, the format
// used by curl and wget, so cookie stores can be imported and exported.
package netscape

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/warpdl/sqlitejar/pkg/sqlitejar"
)

const (
	header         = "# Netscape HTTP Cookie File"
	httpOnlyPrefix = "#HttpOnly_"
)

// LineError reports a line that was skipped while parsing. The line content
// is not kept since it carries the cookie value.
type LineError struct {
	Line   int
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Parse reads cookies from r. Malformed lines do not stop parsing; they are
// collected in skipped, which is nil when every line parsed. err is only set
// when r itself fails.
//
// An expiry of 0 marks a session cookie.
func Parse(r io.Reader) (records []sqlitejar.Record, skipped *multierror.Error, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			skipped = multierror.Append(skipped, &LineError{Line: lineNo, Reason: fmt.Sprintf("expected 7 fields, got %d", len(fields))})
			continue
		}
		expiry, perr := strconv.ParseInt(fields[4], 10, 64)
		if perr != nil || expiry < 0 {
			skipped = multierror.Append(skipped, &LineError{Line: lineNo, Reason: "invalid expiry"})
			continue
		}
		if fields[0] == "" || fields[5] == "" {
			skipped = multierror.Append(skipped, &LineError{Line: lineNo, Reason: "missing domain or name"})
			continue
		}

		rec := sqlitejar.Record{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if expiry == 0 {
			rec.Session = true
		} else {
			rec.Expires = time.Unix(expiry, 0)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error: failed to read Netscape cookie file: %w", err)
	}
	return records, skipped, nil
}

// ReadFile parses the Netscape cookie file name on fsys.
func ReadFile(fsys afero.Fs, name string) ([]sqlitejar.Record, *multierror.Error, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("error: cannot open Netscape cookie file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Write serialises records in Netscape format. Session records are written
// with an expiry of 0.
func Write(w io.Writer, records []sqlitejar.Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, header)
	fmt.Fprintln(bw, "# This file was generated by sqlitejar. Edit at your own risk.")
	fmt.Fprintln(bw)
	for _, r := range records {
		domain := r.Domain
		if r.HttpOnly {
			domain = httpOnlyPrefix + domain
		}
		var expiry int64
		if !r.IsSession() {
			expiry = r.Expires.Unix()
		}
		path := r.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, boolField(strings.HasPrefix(r.Domain, ".")), path, boolField(r.Secure), expiry, r.Name, r.Value)
	}
	return bw.Flush()
}

// WriteFile writes records to name on fsys. The file is written to a
// temporary file first and renamed into place, so a failed export never
// leaves a truncated file behind.
func WriteFile(fsys afero.Fs, name string, records []sqlitejar.Record) error {
	dir := filepath.Dir(name)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error: cannot create directory %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fsys, dir, ".cookies.txt.tmp.*")
	if err != nil {
		return fmt.Errorf("error: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, records); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return fmt.Errorf("error: cannot write Netscape cookie file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("error: cannot close temp file: %w", err)
	}
	// cookies.txt holds credentials.
	if err := fsys.Chmod(tmpName, 0600); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("error: cannot set permissions: %w", err)
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("error: cannot rename Netscape cookie file: %w", err)
	}
	return nil
}

func boolField(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

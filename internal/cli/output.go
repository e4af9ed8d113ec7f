package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/penny-sync/internal/config"
	"github.com/MKhiriev/penny-sync/models"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // At least one resource failed to synchronize
	ExitCommandError = 2 // Invalid configuration, arguments or unreachable store
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printer renders command results as aligned text or JSON.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) *printer {
	return &printer{format: format, w: w}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) table(header string, rows func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

func (p *printer) report(r models.RunReport) error {
	if p.format == "json" {
		return p.json(r)
	}

	err := p.table("RESOURCE\tSTRATEGY\tRECORDS\tDELETED\tDURATION\tRESULT", func(tw *tabwriter.Writer) {
		for _, res := range r.Results {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
				res.Resource, orDash(string(res.Strategy)), res.Records, res.Deleted,
				res.Duration.Round(time.Millisecond), resultText(res))
		}
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "\nrun %s: %d/%d succeeded in %s\n",
		r.RunID, r.Succeeded(), len(r.Results), r.Duration().Round(time.Millisecond))
	return err
}

func (p *printer) states(states []models.SyncState) error {
	if p.format == "json" {
		if states == nil {
			states = []models.SyncState{}
		}
		return p.json(states)
	}
	if len(states) == 0 {
		_, err := fmt.Fprintln(p.w, "no resource has been synchronized yet")
		return err
	}

	return p.table("RESOURCE\tLAST SYNC\tSTRATEGY\tRECORDS\tSTATUS\tERROR", func(tw *tabwriter.Writer) {
		for _, s := range states {
			lastSync := "never"
			if s.LastSyncAt != nil {
				lastSync = s.LastSyncAt.UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
				s.ResourceName, lastSync, orDash(string(s.LastStrategy)), s.RecordsSynced,
				orDash(string(s.LastStatus)), s.LastError)
		}
	})
}

func (p *printer) catalog(c config.Catalog) error {
	if p.format == "json" {
		return p.json(c.Ordered())
	}

	for i, class := range models.ClassOrder {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		fmt.Fprintf(p.w, "%s:\n", class)
		for _, r := range c.Ordered() {
			if r.Class == class {
				fmt.Fprintf(p.w, "  %s\n", r.Name)
			}
		}
	}
	return nil
}

func (p *printer) profile(rec models.Record) error {
	if p.format == "json" {
		return p.json(rec)
	}
	if rec.Len() == 0 {
		_, err := fmt.Fprintln(p.w, "connection ok")
		return err
	}

	fmt.Fprintln(p.w, "connection ok")
	return p.table("FIELD\tVALUE", func(tw *tabwriter.Writer) {
		for _, f := range rec.Fields() {
			fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Value)
		}
	})
}

func (p *printer) buildInfo(b models.AppBuildInfo) error {
	info := struct {
		Version string `json:"version"`
		Date    string `json:"date"`
		Commit  string `json:"commit"`
	}{orNA(b.BuildVersion()), orNA(b.BuildDate()), orNA(b.BuildCommit())}

	if p.format == "json" {
		return p.json(info)
	}
	_, err := fmt.Fprintf(p.w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		info.Version, info.Date, info.Commit)
	return err
}

func resultText(res models.ResourceResult) string {
	switch {
	case res.Error != "":
		return "failed: " + res.Error
	case res.Err != nil:
		return "failed: " + res.Err.Error()
	case res.Skipped != models.SkipNone:
		return "skipped (" + string(res.Skipped) + ")"
	default:
		return "ok"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

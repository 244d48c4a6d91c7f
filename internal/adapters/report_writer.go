package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"tspaths/internal/types"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportWriterAdapter renders resolve and inspect reports as text, json or
// yaml. Text output is styled unless colors are disabled.
type ReportWriterAdapter struct {
	resolved   lipgloss.Style
	unresolved lipgloss.Style
	failed     lipgloss.Style
	header     lipgloss.Style
	muted      lipgloss.Style
}

func NewReportWriterAdapter(colors bool) ReportWriterAdapter {
	if !colors {
		plain := lipgloss.NewStyle()
		return ReportWriterAdapter{resolved: plain, unresolved: plain, failed: plain, header: plain, muted: plain}
	}
	return ReportWriterAdapter{
		resolved:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		unresolved: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		failed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		header:     lipgloss.NewStyle().Bold(true),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (a ReportWriterAdapter) WriteResolution(w io.Writer, format string, records []types.ResolveRecord) error {
	switch normalizeFormat(format) {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatText:
		for _, record := range records {
			if _, err := fmt.Fprintln(w, a.resolutionLine(record)); err != nil {
				return writeError(err)
			}
		}
		return nil
	default:
		return unknownFormat(format)
	}
}

func (a ReportWriterAdapter) resolutionLine(record types.ResolveRecord) string {
	switch record.State {
	case types.HookStateResolved:
		return fmt.Sprintf("%s %s -> %s", a.resolved.Render("resolved"), record.Specifier, record.Path)
	case types.HookStateFailed:
		return fmt.Sprintf("%s %s: %s", a.failed.Render("failed"), record.Specifier, record.Error)
	case types.HookStateBypassed:
		return fmt.Sprintf("%s %s", a.muted.Render("bypassed"), record.Specifier)
	default:
		return fmt.Sprintf("%s %s", a.unresolved.Render("unresolved"), record.Specifier)
	}
}

func (a ReportWriterAdapter) WriteInspection(w io.Writer, format string, scopes []types.ScopeReport) error {
	switch normalizeFormat(format) {
	case FormatJSON:
		return writeJSON(w, scopes)
	case FormatYAML:
		return writeYAML(w, scopes)
	case FormatText:
		var b strings.Builder
		for _, scope := range scopes {
			kind := "reference"
			if scope.Root {
				kind = "root"
			}
			fmt.Fprintf(&b, "%s %s\n", a.header.Render(kind), scope.BaseURL)
			if scope.ConfigFile != "" {
				fmt.Fprintf(&b, "  %s\n", a.muted.Render(scope.ConfigFile))
			}
			for _, alias := range scope.Aliases {
				fmt.Fprintf(&b, "  %s -> %s\n", alias.Pattern, strings.Join(alias.Targets, ", "))
				for _, skipped := range alias.Skipped {
					fmt.Fprintf(&b, "    %s %s\n", a.muted.Render("skipped"), skipped)
				}
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return writeError(err)
		}
		return nil
	default:
		return unknownFormat(format)
	}
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatText
	}
	return format
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode json report").
			WithCause(err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return writeError(err)
	}
	return nil
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode yaml report").
			WithCause(err)
	}
	return encoder.Close()
}

func writeError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write report").
		WithCause(err)
}

func unknownFormat(format string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown report format %q (expected text, json or yaml)", format))
}

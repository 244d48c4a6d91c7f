package ports

import (
	"io"

	"tspaths/internal/types"
)

type ReportWriterPort interface {
	WriteResolution(w io.Writer, format string, records []types.ResolveRecord) error
	WriteInspection(w io.Writer, format string, scopes []types.ScopeReport) error
}

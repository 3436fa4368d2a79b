package service

import (
	"errors"
	"strings"

	"github.com/elipan/partyplan/internal/validation"
)

// ErrNothingToImport is returned when a CSV import passes validation
// but contains zero data rows; no mutation is performed.
var ErrNothingToImport = errors.New("nothing to import")

// ValidationError reports user-correctable problems with a submitted
// record or batch. Fields is set on the interactive path; Rows on the
// batch/import path, one entry per offending row.
type ValidationError struct {
	Fields []validation.FieldError
	Rows   []validation.RowError
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Error())
	}
	for _, re := range e.Rows {
		msgs = append(msgs, re.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages flattens the error into human-readable lines, one per
// problem, for API responses.
func (e *ValidationError) Messages() []string {
	var msgs []string
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Error())
	}
	for _, re := range e.Rows {
		msgs = append(msgs, re.Error())
	}
	return msgs
}

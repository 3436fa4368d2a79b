// Package csvio transcodes the guest list to and from its CSV
// interchange format. Export produces a fixed header plus one row per
// guest; import validates the header strictly and each data row
// individually, reusing the shared validation rules so form and import
// reject the same candidates.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elipan/partyplan/internal/models"
	"github.com/elipan/partyplan/internal/validation"
)

// Header is the exact column set, in order. Import rejects the whole
// file when the header row differs.
var Header = []string{"Nombre", "Estado", "Adultos", "Niños"}

// ErrNoGuests is returned when exporting an empty collection; no file
// should be produced.
var ErrNoGuests = errors.New("no guests to export")

// HeaderError is the fatal, whole-file rejection for a malformed
// header row.
type HeaderError struct {
	Got []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header mismatch: expected %q, got %q",
		strings.Join(Header, ","), strings.Join(e.Got, ","))
}

// ExportGuests writes the guest collection as CSV. Field quoting and
// escaping follow encoding/csv (RFC 4180).
func ExportGuests(w io.Writer, guests []models.Guest) error {
	if len(guests) == 0 {
		return ErrNoGuests
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, g := range guests {
		record := []string{
			g.Name,
			string(g.Status),
			strconv.Itoa(g.Adults),
			strconv.Itoa(g.Children),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write guest row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportGuests parses CSV input into guest candidates.
//
// The returned error is fatal (unreadable input, missing or mismatched
// header): nothing can be salvaged from the file. Row-level problems
// are accumulated in rowErrs instead, one entry per offending data row
// (1-based, header excluded), and parsing continues so the caller can
// present every problem at once. Candidates are only meaningful when
// rowErrs is empty; the import is all-or-nothing at the batch level.
func ImportGuests(r io.Reader) (candidates []models.GuestCandidate, rowErrs []validation.RowError, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field-count mismatches are row errors, not fatal

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, &HeaderError{}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if !headerMatches(header) {
		return nil, nil, &HeaderError{Got: header}
	}

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}

		if len(record) != len(Header) {
			rowErrs = append(rowErrs, validation.RowError{
				Row: row,
				Errs: []validation.FieldError{{
					Field:   "row",
					Message: fmt.Sprintf("expected %d fields, got %d", len(Header), len(record)),
				}},
			})
			continue
		}

		candidate, fieldErrs := coerceRow(record)
		if len(fieldErrs) == 0 {
			fieldErrs = validation.ValidateGuest(candidate, true)
		}
		if len(fieldErrs) > 0 {
			rowErrs = append(rowErrs, validation.RowError{Row: row, Errs: fieldErrs})
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, rowErrs, nil
}

// coerceRow applies the import-path coercions: name trimmed, status
// lower-cased, headcounts parsed as integers. Unparsable numbers are
// reported here; semantic rules stay in the validation package.
func coerceRow(record []string) (models.GuestCandidate, []validation.FieldError) {
	var errs []validation.FieldError

	c := models.GuestCandidate{
		Name:   strings.TrimSpace(record[0]),
		Status: models.GuestStatus(strings.ToLower(strings.TrimSpace(record[1]))),
	}

	adults, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		errs = append(errs, validation.FieldError{Field: "adults", Message: "must be an integer"})
	}
	c.Adults = adults

	children, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		errs = append(errs, validation.FieldError{Field: "children", Message: "must be an integer"})
	}
	c.Children = children

	return c, errs
}

func headerMatches(got []string) bool {
	if len(got) != len(Header) {
		return false
	}
	for i, h := range Header {
		if strings.TrimSpace(got[i]) != h {
			return false
		}
	}
	return true
}

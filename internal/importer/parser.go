// server/internal/importer/parser.go
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one normalized facility row produced by a source parser.
type Record struct {
	Name    string
	Street  string
	City    string
	State   string
	Zip     string
	Phone   string
	Email   string
	Website string

	// Attributes preserves list-valued and unrecognized columns verbatim.
	Attributes map[string]any

	SourceID string
}

// listColumns are split into string lists inside Attributes.
var listColumns = map[string]bool{
	"commodities":      true,
	"railroads":        true,
	"railroads_served": true,
	"services":         true,
}

// columnAliases maps recognized header spellings to canonical field names.
var columnAliases = map[string]string{
	"name":           "name",
	"facility name":  "name",
	"company":        "name",
	"street":         "street",
	"address":        "street",
	"street address": "street",
	"city":           "city",
	"state":          "state",
	"zip":            "zip",
	"zipcode":        "zip",
	"zip code":       "zip",
	"postal code":    "zip",
	"phone":          "phone",
	"phone number":   "phone",
	"email":          "email",
	"website":        "website",
	"url":            "website",
	"id":             "source_id",
	"source id":      "source_id",
}

// Parse reads facility records from r; the filename extension selects the
// format (.xlsx or .csv).
func Parse(r io.Reader, filename string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", filepath.Ext(filename))
	}
}

func parseXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}

	return rowsToRecords(rows)
}

func parseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rowsToRecords(rows)
}

// rowsToRecords maps a header row plus data rows to Records. Recognized
// columns fill the Record fields; everything else lands in Attributes.
func rowsToRecords(rows [][]string) ([]Record, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("source has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{Attributes: map[string]any{}}
		empty := true

		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			empty = false

			switch columnAliases[headers[i]] {
			case "name":
				rec.Name = value
			case "street":
				rec.Street = value
			case "city":
				rec.City = value
			case "state":
				rec.State = NormalizeState(value)
			case "zip":
				rec.Zip = value
			case "phone":
				rec.Phone = value
			case "email":
				rec.Email = value
			case "website":
				rec.Website = NormalizeWebsite(value)
			case "source_id":
				rec.SourceID = value
			default:
				key := strings.ReplaceAll(headers[i], " ", "_")
				if listColumns[key] {
					rec.Attributes[key] = SplitList(value)
				} else {
					rec.Attributes[key] = value
				}
			}
		}

		if !empty {
			records = append(records, rec)
		}
	}

	return records, nil
}

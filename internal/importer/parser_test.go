package importer

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Address,City,State,Zip,Website,Commodities,Track Capacity",
		"Acme Transload,100 Rail Way,Topeka,Kansas,66601,acmetransload.com,\"grain, fertilizer; lumber\",40 cars",
		"No State Co,1 Main St,Omaha,,68102,,,",
	}, "\n")

	records, err := Parse(strings.NewReader(csv), "facilities.csv")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	rec := records[0]
	if rec.Name != "Acme Transload" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Street != "100 Rail Way" {
		t.Errorf("Street = %q", rec.Street)
	}
	if rec.State != "KS" {
		t.Errorf("State = %q; want KS", rec.State)
	}
	if rec.Website != "https://acmetransload.com" {
		t.Errorf("Website = %q", rec.Website)
	}

	commodities, ok := rec.Attributes["commodities"].([]string)
	if !ok {
		t.Fatalf("commodities attribute missing or wrong type: %#v", rec.Attributes["commodities"])
	}
	if want := []string{"grain", "fertilizer", "lumber"}; !reflect.DeepEqual(commodities, want) {
		t.Errorf("commodities = %v; want %v", commodities, want)
	}

	// Unrecognized column preserved verbatim.
	if got := rec.Attributes["track_capacity"]; got != "40 cars" {
		t.Errorf("track_capacity = %v; want %q", got, "40 cars")
	}

	// Second row parses even with missing state; the importer skips it later.
	if records[1].State != "" {
		t.Errorf("expected empty state, got %q", records[1].State)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "City", "State", "Railroads"},
		{"Prairie Grain Elevator", "Fargo", "North Dakota", "BNSF; CPKC"},
	}
	for i, row := range rows {
		for j, cell := range row {
			ref, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	records, err := Parse(&buf, "facilities.xlsx")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Name != "Prairie Grain Elevator" {
		t.Errorf("Name = %q", records[0].Name)
	}
	if records[0].State != "ND" {
		t.Errorf("State = %q; want ND", records[0].State)
	}
	railroads, ok := records[0].Attributes["railroads"].([]string)
	if !ok || len(railroads) != 2 {
		t.Errorf("railroads = %#v; want 2 entries", records[0].Attributes["railroads"])
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse(strings.NewReader("x"), "facilities.pdf")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

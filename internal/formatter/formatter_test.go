package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/desertthunder/slskx/internal/models"
)

func sampleTransfers() []models.TransferItem {
	return []models.TransferItem{
		{
			ID:               "a",
			Filename:         "music/blue train.flac",
			Username:         "bob",
			State:            "InProgress",
			BytesTransferred: 512,
			TotalSize:        1024,
			AverageSpeed:     100.5,
			PercentComplete:  50,
		},
		{
			ID:              "b",
			Filename:        "music/naima.flac",
			Username:        "carol",
			State:           "Completed",
			TotalSize:       2048,
			PercentComplete: 100,
		},
	}
}

func TestFormatBytes(t *testing.T) {
	tc := []struct {
		name string
		n    int64
		want string
	}{
		{name: "bytes", n: 512, want: "512 B"},
		{name: "kibibytes", n: 2048, want: "2.0 KiB"},
		{name: "mebibytes", n: 5 * 1024 * 1024, want: "5.0 MiB"},
		{name: "zero", n: 0, want: "0 B"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.n); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatSpeed(t *testing.T) {
	if got := FormatSpeed(0); got != "-" {
		t.Errorf("FormatSpeed(0) = %q, want -", got)
	}
	if got := FormatSpeed(2048); got != "2.0 KiB/s" {
		t.Errorf("FormatSpeed(2048) = %q, want 2.0 KiB/s", got)
	}
}

func TestExportTransfersCSV(t *testing.T) {
	data, err := ExportTransfersCSV(sampleTransfers())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 records, got %d rows", len(records))
	}
	if records[0][0] != "ID" || records[0][3] != "State" {
		t.Errorf("unexpected headers %v", records[0])
	}
	if records[1][2] != "bob" || records[1][3] != "InProgress" {
		t.Errorf("unexpected record %v", records[1])
	}
}

func TestExportTransfersMarkdown(t *testing.T) {
	data, err := ExportTransfersMarkdown("Active Transfers", sampleTransfers())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	output := string(data)

	if !strings.HasPrefix(output, "# Active Transfers") {
		t.Error("expected title heading")
	}
	if !strings.Contains(output, "| music/blue train.flac | bob | InProgress |") {
		t.Errorf("expected transfer row, got:\n%s", output)
	}
	if !strings.Contains(output, "1.0 KiB") {
		t.Error("expected human-readable size")
	}
}

func TestExportTransfersMarkdownEmpty(t *testing.T) {
	data, err := ExportTransfersMarkdown("Finished Transfers", nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(data), "_No transfers._") {
		t.Error("expected empty-list placeholder")
	}
}

func TestExportSearchResultsCSV(t *testing.T) {
	results := []models.SearchResult{
		{ID: "r1", Username: "bob", Filename: "a.flac", Size: 9, BitRate: 320, QueueLength: 2, HasFreeSlot: true},
	}

	data, err := ExportSearchResultsCSV(results)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 record, got %d rows", len(records))
	}
	if records[1][1] != "bob" || records[1][6] != "true" {
		t.Errorf("unexpected record %v", records[1])
	}
}

func TestExportSearchResultsMarkdown(t *testing.T) {
	results := []models.SearchResult{
		{ID: "r1", Username: "bob", Filename: "a.flac", Size: 2048, BitRate: 320, HasFreeSlot: true},
	}

	data, err := ExportSearchResultsMarkdown("blue train", results)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	output := string(data)

	if !strings.Contains(output, "# Search: blue train") {
		t.Error("expected query heading")
	}
	if !strings.Contains(output, "| bob | a.flac | 2.0 KiB | 320 | 0 | yes |") {
		t.Errorf("expected result row, got:\n%s", output)
	}
}

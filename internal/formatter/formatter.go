// package formatter provides functions to export transfer and search listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/desertthunder/slskx/internal/models"
)

// FormatBytes renders a byte count in human-readable units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatSpeed renders an average transfer speed in bytes per second.
func FormatSpeed(bps float64) string {
	if bps <= 0 {
		return "-"
	}
	return FormatBytes(int64(bps)) + "/s"
}

// ExportTransfersCSV converts transfer items to CSV with columns: ID, Filename, Username, State, Transferred, Size, Speed, Percent
func ExportTransfersCSV(items []models.TransferItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Filename", "Username", "State", "Transferred", "Size", "Speed", "Percent"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.ID,
			item.Filename,
			item.Username,
			item.State,
			strconv.FormatInt(item.BytesTransferred, 10),
			strconv.FormatInt(item.TotalSize, 10),
			strconv.FormatFloat(item.AverageSpeed, 'f', 1, 64),
			strconv.FormatFloat(item.PercentComplete, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportTransfersMarkdown converts transfer items to a Markdown table under the given title
func ExportTransfersMarkdown(title string, items []models.TransferItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Total:** %d transfers\n\n", len(items)))

	if len(items) == 0 {
		buf.WriteString("_No transfers._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| Filename | User | State | Progress | Size | Speed |\n")
	buf.WriteString("|----------|------|-------|----------|------|-------|\n")
	for _, item := range items {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %.1f%% | %s | %s |\n",
			item.Filename,
			item.Username,
			item.State,
			item.PercentComplete,
			FormatBytes(item.TotalSize),
			FormatSpeed(item.AverageSpeed),
		))
	}

	return buf.Bytes(), nil
}

// ExportSearchResultsCSV converts search results to CSV with columns: ID, Username, Filename, Size, BitRate, Queue, FreeSlot
func ExportSearchResultsCSV(results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Username", "Filename", "Size", "BitRate", "Queue", "FreeSlot"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.ID,
			result.Username,
			result.Filename,
			strconv.FormatInt(result.Size, 10),
			strconv.Itoa(result.BitRate),
			strconv.Itoa(result.QueueLength),
			strconv.FormatBool(result.HasFreeSlot),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportSearchResultsMarkdown converts search results to a Markdown table
func ExportSearchResultsMarkdown(query string, results []models.SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Search: %s\n\n", query))
	buf.WriteString(fmt.Sprintf("**Results:** %d\n\n", len(results)))

	if len(results) == 0 {
		buf.WriteString("_No results._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| User | Filename | Size | Bit Rate | Queue | Free Slot |\n")
	buf.WriteString("|------|----------|------|----------|-------|-----------|\n")
	for _, result := range results {
		slot := "no"
		if result.HasFreeSlot {
			slot = "yes"
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %s |\n",
			result.Username,
			result.Filename,
			FormatBytes(result.Size),
			result.BitRate,
			result.QueueLength,
			slot,
		))
	}

	return buf.Bytes(), nil
}

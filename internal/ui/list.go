package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/slskx/internal/formatter"
	"github.com/desertthunder/slskx/internal/models"
)

var (
	_ list.Item = transferItem{}
	_ list.Item = searchItem{}
)

// transferItem wraps [models.TransferItem] to implement [list.Item].
type transferItem struct {
	transfer models.TransferItem
}

func (i transferItem) FilterValue() string { return i.transfer.Filename }
func (i transferItem) Title() string       { return i.transfer.Filename }
func (i transferItem) Description() string {
	return fmt.Sprintf("%s • %s • %.1f%% • %s",
		i.transfer.Username,
		i.transfer.State,
		i.transfer.PercentComplete,
		formatter.FormatSpeed(i.transfer.AverageSpeed),
	)
}

// searchItem wraps [models.SearchResult] to implement [list.Item].
type searchItem struct {
	result models.SearchResult
}

func (i searchItem) FilterValue() string { return i.result.Filename }
func (i searchItem) Title() string       { return i.result.Filename }
func (i searchItem) Description() string {
	slot := "queued"
	if i.result.HasFreeSlot {
		slot = "free slot"
	}
	return fmt.Sprintf("%s • %s • %d kbps • %s",
		i.result.Username,
		formatter.FormatBytes(i.result.Size),
		i.result.BitRate,
		slot,
	)
}

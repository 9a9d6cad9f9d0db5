// Peer daemon API client
//
// Implements the status source and command surface consumed by the
// playback machine, the transfer manager, and the search commands.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
)

const (
	playbackPath       = "/api/v0/playback"
	playbackTogglePath = "/api/v0/playback/toggle"
	playbackStopPath   = "/api/v0/playback/stop"
	transfersPath      = "/api/v0/transfers/downloads"
	transfersDonePath  = "/api/v0/transfers/downloads/finished"
	searchesPath       = "/api/v0/searches"
	enqueuePath        = "/api/v0/transfers/enqueue"
)

// daemonTrack is the track payload inside a playback status response.
type daemonTrack struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// daemonPlayback is the daemon's playback status response.
type daemonPlayback struct {
	Status          string       `json:"status"`
	ProgressPercent int          `json:"progressPercent"`
	Track           *daemonTrack `json:"track"`
}

// daemonTransfer is one item in the daemon's transfer list response.
type daemonTransfer struct {
	ID               string  `json:"id"`
	Filename         string  `json:"filename"`
	Username         string  `json:"username"`
	State            string  `json:"state"`
	BytesTransferred int64   `json:"bytesTransferred"`
	Size             int64   `json:"size"`
	AverageSpeed     float64 `json:"averageSpeed"`
	PercentComplete  float64 `json:"percentComplete"`
}

// daemonResult is the envelope for command responses.
type daemonResult struct {
	OK      bool   `json:"ok"`
	Playing bool   `json:"playing"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

// daemonSearchResponse is one peer file offer in a search responses listing.
type daemonSearchResponse struct {
	Username    string `json:"username"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	BitRate     int    `json:"bitRate"`
	QueueLength int    `json:"queueLength"`
	HasFreeSlot bool   `json:"hasFreeSlot"`
}

// ParsePlaybackStatus maps the daemon's status label onto a
// [models.PlaybackStatus]. Unknown labels are a malformed snapshot, which
// callers treat as a transient failure rather than applying a bad state.
func ParsePlaybackStatus(s string) (models.PlaybackStatus, error) {
	switch strings.ToLower(s) {
	case "stopped":
		return models.StatusStopped, nil
	case "loading":
		return models.StatusLoading, nil
	case "playing":
		return models.StatusPlaying, nil
	case "paused":
		return models.StatusPaused, nil
	default:
		return models.StatusStopped, fmt.Errorf("%w: playback status %q", shared.ErrMalformedSnapshot, s)
	}
}

// DaemonService talks to the peer daemon over its JSON API.
type DaemonService struct {
	api *APIService
}

// NewDaemonService creates a daemon client for the given base URL and API key.
func NewDaemonService(baseURL, apiKey string, client *http.Client) *DaemonService {
	return &DaemonService{api: NewAPIService(baseURL, apiKey, client)}
}

// Name returns the service name.
func (d *DaemonService) Name() string { return "daemon" }

// PlaybackStatus fetches the current playback snapshot.
func (d *DaemonService) PlaybackStatus(ctx context.Context) (*models.PlaybackSnapshot, error) {
	resp, err := d.api.Get(ctx, playbackPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: playback status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload daemonPlayback
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedSnapshot, err)
	}

	status, err := ParsePlaybackStatus(payload.Status)
	if err != nil {
		return nil, err
	}

	snap := &models.PlaybackSnapshot{
		Status:          status,
		ProgressPercent: payload.ProgressPercent,
	}
	if payload.Track != nil {
		snap.Track = &models.TrackRef{
			Title:  payload.Track.Title,
			Artist: payload.Track.Artist,
			Album:  payload.Track.Album,
		}
	}
	return snap, nil
}

// TogglePlayback flips play/pause and returns the resulting playing flag.
func (d *DaemonService) TogglePlayback(ctx context.Context) (bool, error) {
	result, err := d.command(ctx, http.MethodPost, playbackTogglePath, nil)
	if err != nil {
		return false, err
	}
	return result.Playing, nil
}

// StopPlayback stops the playback session.
func (d *DaemonService) StopPlayback(ctx context.Context) error {
	_, err := d.command(ctx, http.MethodPost, playbackStopPath, nil)
	return err
}

// TransferList fetches a full snapshot of the daemon's transfers.
func (d *DaemonService) TransferList(ctx context.Context) ([]models.TransferItem, error) {
	resp, err := d.api.Get(ctx, transfersPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: transfer list %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload []daemonTransfer
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedSnapshot, err)
	}

	items := make([]models.TransferItem, len(payload))
	for i, t := range payload {
		items[i] = models.TransferItem{
			ID:               t.ID,
			Filename:         t.Filename,
			Username:         t.Username,
			State:            t.State,
			BytesTransferred: t.BytesTransferred,
			TotalSize:        t.Size,
			AverageSpeed:     t.AverageSpeed,
			PercentComplete:  t.PercentComplete,
		}
	}
	return items, nil
}

// CancelTransfer asks the daemon to cancel one transfer.
func (d *DaemonService) CancelTransfer(ctx context.Context, id, username string) error {
	path := fmt.Sprintf("%s/%s/cancel", transfersPath, url.PathEscape(id))
	body, err := json.Marshal(map[string]string{"username": username})
	if err != nil {
		return fmt.Errorf("failed to marshal cancel request: %w", err)
	}
	_, err = d.command(ctx, http.MethodPost, path, body)
	return err
}

// ClearFinishedTransfers asks the daemon to drop its finished transfers.
func (d *DaemonService) ClearFinishedTransfers(ctx context.Context) error {
	_, err := d.command(ctx, http.MethodDelete, transfersDonePath, nil)
	return err
}

// Search submits a search to the daemon and returns its token.
func (d *DaemonService) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	body, err := json.Marshal(map[string]string{"searchText": query})
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}

	result, err := d.command(ctx, http.MethodPost, searchesPath, body)
	if err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("%w: search accepted without token", shared.ErrAPIRequest)
	}
	return result.Token, nil
}

// SearchResponses fetches the peer file offers collected so far for a search.
// Each result is assigned a local id for selection in listings.
func (d *DaemonService) SearchResponses(ctx context.Context, token string) ([]models.SearchResult, error) {
	path := fmt.Sprintf("%s/%s/responses", searchesPath, url.PathEscape(token))
	resp, err := d.api.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: token %s", shared.ErrSearchNotFound, token)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: search responses %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload []daemonSearchResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedSnapshot, err)
	}

	results := make([]models.SearchResult, len(payload))
	for i, r := range payload {
		results[i] = models.SearchResult{
			ID:          shared.GenerateID(),
			Token:       token,
			Username:    r.Username,
			Filename:    r.Filename,
			Size:        r.Size,
			BitRate:     r.BitRate,
			QueueLength: r.QueueLength,
			HasFreeSlot: r.HasFreeSlot,
		}
	}
	return results, nil
}

// EnqueueDownload asks the daemon to download a file from a peer. The new
// transfer shows up in the transfer list on a later poll.
func (d *DaemonService) EnqueueDownload(ctx context.Context, username, filename string, size int64) error {
	if username == "" || filename == "" {
		return fmt.Errorf("%w: username and filename", shared.ErrMissingArgument)
	}

	body, err := json.Marshal(map[string]any{
		"username": username,
		"filename": filename,
		"size":     size,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal enqueue request: %w", err)
	}
	_, err = d.command(ctx, http.MethodPost, enqueuePath, body)
	return err
}

// command issues a one-shot request and decodes the daemon's result
// envelope. An explicit error field is a command rejection; callers surface
// it as a transient notice, never a crash.
func (d *DaemonService) command(ctx context.Context, method, path string, body []byte) (*daemonResult, error) {
	var resp *APIResponse
	var err error

	switch method {
	case http.MethodPost:
		resp, err = d.api.Post(ctx, path, body)
	case http.MethodDelete:
		resp, err = d.api.Delete(ctx, path)
	default:
		return nil, fmt.Errorf("%w: method %s", shared.ErrInvalidArgument, method)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDaemonUnavailable, err)
	}

	var result daemonResult
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedSnapshot, err)
		}
	}

	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrCommandRejected, result.Error)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s %d", shared.ErrAPIRequest, path, resp.StatusCode)
	}
	return &result, nil
}

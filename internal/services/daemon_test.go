package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
)

func newTestDaemon(t *testing.T, handler http.HandlerFunc) (*DaemonService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewDaemonService(server.URL, "", nil), server
}

func TestParsePlaybackStatus(t *testing.T) {
	tc := []struct {
		label   string
		want    models.PlaybackStatus
		wantErr bool
	}{
		{label: "Stopped", want: models.StatusStopped},
		{label: "loading", want: models.StatusLoading},
		{label: "Playing", want: models.StatusPlaying},
		{label: "PAUSED", want: models.StatusPaused},
		{label: "Buffering", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParsePlaybackStatus(tt.label)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrMalformedSnapshot) {
					t.Errorf("expected malformed snapshot error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePlaybackStatus(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestDaemonPlaybackStatus(t *testing.T) {
	t.Run("With Track", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != playbackPath {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"status":          "loading",
				"progressPercent": 42,
				"track":           map[string]string{"title": "Naima", "artist": "John Coltrane"},
			})
		})

		snap, err := daemon.PlaybackStatus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Status != models.StatusLoading || snap.ProgressPercent != 42 {
			t.Errorf("unexpected snapshot %+v", snap)
		}
		if snap.Track == nil || snap.Track.Title != "Naima" {
			t.Errorf("expected track in snapshot, got %+v", snap.Track)
		}
	})

	t.Run("Without Track", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "stopped"})
		})

		snap, err := daemon.PlaybackStatus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Track != nil {
			t.Error("expected absent track")
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})

		if _, err := daemon.PlaybackStatus(context.Background()); !errors.Is(err, shared.ErrMalformedSnapshot) {
			t.Errorf("expected malformed snapshot error, got %v", err)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		if _, err := daemon.PlaybackStatus(context.Background()); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected API request error, got %v", err)
		}
	})
}

func TestDaemonTogglePlayback(t *testing.T) {
	t.Run("Returns Playing Flag", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != playbackTogglePath {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"playing": true})
		})

		playing, err := daemon.TogglePlayback(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !playing {
			t.Error("expected playing flag true")
		}
	})

	t.Run("Rejection", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]any{"error": "no active session"})
		})

		if _, err := daemon.TogglePlayback(context.Background()); !errors.Is(err, shared.ErrCommandRejected) {
			t.Errorf("expected command rejection, got %v", err)
		}
	})
}

func TestDaemonStopPlayback(t *testing.T) {
	daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != playbackStopPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	if err := daemon.StopPlayback(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDaemonTransferList(t *testing.T) {
	t.Run("Snapshot", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != transfersPath {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{
					"id":               "a",
					"filename":         "music/blue train.flac",
					"username":         "bob",
					"state":            "InProgress",
					"bytesTransferred": 512,
					"size":             1024,
					"averageSpeed":     100.5,
					"percentComplete":  50.0,
				},
			})
		})

		items, err := daemon.TransferList(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		item := items[0]
		if item.ID != "a" || item.Username != "bob" || item.State != "InProgress" {
			t.Errorf("unexpected item %+v", item)
		}
		if item.TotalSize != 1024 || item.BytesTransferred != 512 {
			t.Errorf("unexpected sizes in %+v", item)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"a list"}`))
		})

		if _, err := daemon.TransferList(context.Background()); !errors.Is(err, shared.ErrMalformedSnapshot) {
			t.Errorf("expected malformed snapshot error, got %v", err)
		}
	})
}

func TestDaemonCancelTransfer(t *testing.T) {
	daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		wantPath := transfersPath + "/a/cancel"
		if r.Method != http.MethodPost || r.URL.Path != wantPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "bob" {
			t.Errorf("expected username bob, got %q", body["username"])
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	if err := daemon.CancelTransfer(context.Background(), "a", "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDaemonClearFinishedTransfers(t *testing.T) {
	daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != transfersDonePath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := daemon.ClearFinishedTransfers(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDaemonSearch(t *testing.T) {
	t.Run("Returns Token", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["searchText"] != "blue train" {
				t.Errorf("expected query in body, got %q", body["searchText"])
			}
			json.NewEncoder(w).Encode(map[string]any{"token": "tok-1"})
		})

		token, err := daemon.Search(context.Background(), "blue train")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "tok-1" {
			t.Errorf("expected token tok-1, got %q", token)
		}
	})

	t.Run("Empty Query", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {})
		if _, err := daemon.Search(context.Background(), "  "); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing argument error, got %v", err)
		}
	})
}

func TestDaemonSearchResponses(t *testing.T) {
	t.Run("Assigns Local IDs", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]any{
				{"username": "bob", "filename": "a.flac", "size": 9, "bitRate": 320, "hasFreeSlot": true},
				{"username": "carol", "filename": "b.flac", "size": 7},
			})
		})

		results, err := daemon.SearchResponses(context.Background(), "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].ID == "" || results[0].ID == results[1].ID {
			t.Error("expected unique local ids")
		}
		if results[0].Token != "tok-1" {
			t.Errorf("expected token recorded, got %q", results[0].Token)
		}
	})

	t.Run("Unknown Token", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		if _, err := daemon.SearchResponses(context.Background(), "nope"); !errors.Is(err, shared.ErrSearchNotFound) {
			t.Errorf("expected search not found, got %v", err)
		}
	})
}

func TestDaemonEnqueueDownload(t *testing.T) {
	t.Run("Enqueues", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != enqueuePath {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"ok": true})
		})

		if err := daemon.EnqueueDownload(context.Background(), "bob", "a.flac", 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		daemon, _ := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {})
		if err := daemon.EnqueueDownload(context.Background(), "", "a.flac", 9); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing argument error, got %v", err)
		}
	})
}

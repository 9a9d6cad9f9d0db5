package transfers

import (
	"reflect"
	"testing"

	"github.com/desertthunder/slskx/internal/models"
)

func TestClassifierIsTerminal(t *testing.T) {
	tc := []struct {
		name  string
		state string
		want  bool
	}{
		{name: "completed", state: "Completed", want: true},
		{name: "succeeded", state: "Succeeded", want: true},
		{name: "cancelled", state: "Cancelled", want: true},
		{name: "canceled single l", state: "Canceled", want: true},
		{name: "failed", state: "Failed", want: true},
		{name: "errored", state: "Errored", want: true},
		{name: "compound label", state: "Cancelled, Succeeded", want: true},
		{name: "in progress", state: "InProgress", want: false},
		{name: "queued", state: "Queued", want: false},
		{name: "empty", state: "", want: false},
		{name: "unknown label", state: "Negotiating", want: false},
		{name: "case sensitive", state: "completed", want: false},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTerminal(tt.state); got != tt.want {
				t.Errorf("IsTerminal(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestClassifierCustomStates(t *testing.T) {
	classifier := NewClassifier([]string{"Done"})

	if !classifier.IsTerminal("Done") {
		t.Error("expected custom label to classify as terminal")
	}
	if classifier.IsTerminal("Completed") {
		t.Error("expected default label to be inactive with custom set")
	}
}

func TestReconcilePartition(t *testing.T) {
	reconciler := NewReconciler(nil)
	snapshot := []models.TransferItem{
		{ID: "a", Username: "bob", State: "InProgress", PercentComplete: 55},
		{ID: "b", Username: "carol", State: "Completed"},
		{ID: "c", Username: "dave", State: "Queued"},
		{ID: "d", Username: "erin", State: "Cancelled, Succeeded"},
		{ID: "e", Username: "frank", State: ""},
	}

	collections := reconciler.Reconcile(snapshot)

	wantActive := []string{"a", "c", "e"}
	wantFinished := []string{"b", "d"}

	for _, id := range wantActive {
		if _, ok := collections.Active[id]; !ok {
			t.Errorf("expected %s in Active", id)
		}
	}
	for _, id := range wantFinished {
		if _, ok := collections.Finished[id]; !ok {
			t.Errorf("expected %s in Finished", id)
		}
	}

	// Partition invariant: every id in exactly one collection.
	for _, item := range snapshot {
		_, active := collections.Active[item.ID]
		_, finished := collections.Finished[item.ID]
		if active == finished {
			t.Errorf("id %s must appear in exactly one partition (active=%v finished=%v)", item.ID, active, finished)
		}
	}

	if _, ok := collections.Active["z"]; ok {
		t.Error("ids absent from the snapshot must not appear")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	reconciler := NewReconciler(nil)
	snapshot := []models.TransferItem{
		{ID: "a", State: "InProgress"},
		{ID: "b", State: "Completed"},
	}

	first := reconciler.Reconcile(snapshot)
	second := reconciler.Reconcile(snapshot)

	if !reflect.DeepEqual(first, second) {
		t.Error("reconciling the same snapshot twice must yield identical collections")
	}
}

func TestReconcileProgressNotConsulted(t *testing.T) {
	reconciler := NewReconciler(nil)
	collections := reconciler.Reconcile([]models.TransferItem{
		{ID: "a", State: "InProgress", PercentComplete: 100},
	})

	if _, ok := collections.Active["a"]; !ok {
		t.Error("an item at 100% with a non-terminal label must stay active")
	}
}

func TestStoreReplacesWholesale(t *testing.T) {
	reconciler := NewReconciler(nil)
	store := NewStore()

	store.Publish(reconciler.Reconcile([]models.TransferItem{
		{ID: "a", State: "InProgress", PercentComplete: 55},
	}))

	if active, finished := store.Counts(); active != 1 || finished != 0 {
		t.Fatalf("tick 1: want counts 1/0, got %d/%d", active, finished)
	}

	// Next tick: the same id comes back terminal.
	store.Publish(reconciler.Reconcile([]models.TransferItem{
		{ID: "a", State: "Completed"},
	}))

	if active, finished := store.Counts(); active != 0 || finished != 1 {
		t.Fatalf("tick 2: want counts 0/1, got %d/%d", active, finished)
	}

	snapshot := store.Snapshot()
	if _, ok := snapshot.Finished["a"]; !ok {
		t.Error("expected item a to have moved to Finished")
	}
	if _, ok := snapshot.Active["a"]; ok {
		t.Error("item a must no longer be active")
	}

	// An id missing from the new snapshot disappears entirely.
	store.Publish(reconciler.Reconcile(nil))
	if active, finished := store.Counts(); active != 0 || finished != 0 {
		t.Errorf("want empty collections after empty snapshot, got %d/%d", active, finished)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	store := NewStore()
	store.Publish(NewReconciler(nil).Reconcile([]models.TransferItem{
		{ID: "a", State: "InProgress"},
	}))

	snapshot := store.Snapshot()
	delete(snapshot.Active, "a")

	if active, _ := store.Counts(); active != 1 {
		t.Error("mutating a snapshot must not affect the store")
	}
}

// package transfers partitions daemon transfer snapshots into active and
// finished collections.
//
// The daemon is the sole source of truth: every poll delivers a full
// snapshot, and [Reconciler.Reconcile] rebuilds both collections wholesale
// from it. An id missing from the latest snapshot simply disappears; the
// client never patches or accumulates transfer state.
package transfers

import (
	"sync"

	"github.com/desertthunder/slskx/internal/models"
)

// Collections holds the two disjoint transfer partitions keyed by id.
//
// At any instant each known id belongs to exactly one of Active/Finished.
type Collections struct {
	Active   map[string]models.TransferItem
	Finished map[string]models.TransferItem
}

// NewCollections returns an empty pair of partitions.
func NewCollections() Collections {
	return Collections{
		Active:   map[string]models.TransferItem{},
		Finished: map[string]models.TransferItem{},
	}
}

// Counts returns the cardinalities of the two partitions.
func (c Collections) Counts() (active, finished int) {
	return len(c.Active), len(c.Finished)
}

// ActiveList returns the active items as a slice.
func (c Collections) ActiveList() []models.TransferItem {
	return itemList(c.Active)
}

// FinishedList returns the finished items as a slice.
func (c Collections) FinishedList() []models.TransferItem {
	return itemList(c.Finished)
}

func itemList(m map[string]models.TransferItem) []models.TransferItem {
	items := make([]models.TransferItem, 0, len(m))
	for _, item := range m {
		items = append(items, item)
	}
	return items
}

func (c Collections) clone() Collections {
	out := Collections{
		Active:   make(map[string]models.TransferItem, len(c.Active)),
		Finished: make(map[string]models.TransferItem, len(c.Finished)),
	}
	for id, item := range c.Active {
		out.Active[id] = item
	}
	for id, item := range c.Finished {
		out.Finished[id] = item
	}
	return out
}

// Reconciler partitions transfer snapshots by terminal-state classification.
type Reconciler struct {
	classifier *Classifier
}

// NewReconciler creates a Reconciler using the given classifier, or the
// default classifier when nil.
func NewReconciler(classifier *Classifier) *Reconciler {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Reconciler{classifier: classifier}
}

// Reconcile partitions a full snapshot into active and finished collections.
//
// Pure function of the snapshot: no prior state is consulted, so applying
// the same snapshot twice yields identical collections. Classification
// depends only on the state label; an item reporting 100% progress with a
// non-terminal label stays active, since the daemon's label is
// authoritative.
func (r *Reconciler) Reconcile(snapshot []models.TransferItem) Collections {
	collections := NewCollections()
	for _, item := range snapshot {
		if r.classifier.IsTerminal(item.State) {
			collections.Finished[item.ID] = item
		} else {
			collections.Active[item.ID] = item
		}
	}
	return collections
}

// Store owns the published collections.
//
// Writers replace the collections wholesale; readers get point-in-time
// copies, so a stale interleaved write can only ever be superseded, never
// observed half-applied.
type Store struct {
	mu          sync.RWMutex
	collections Collections
}

// NewStore creates a Store with empty collections.
func NewStore() *Store {
	return &Store{collections: NewCollections()}
}

// Publish replaces the current collections.
func (s *Store) Publish(c Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = c
}

// Snapshot returns a copy of the current collections for read-only use.
func (s *Store) Snapshot() Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections.clone()
}

// Counts returns the current partition cardinalities, recomputed from the
// live collections rather than cached.
func (s *Store) Counts() (active, finished int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections.Counts()
}

package application

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/example/resort-points-editor/internal/points"
)

// Workspace holds one session's document state: the canonical document plus
// a working copy of the currently selected resort. Edits land on the working
// copy and are folded back into the canonical document when the selection
// changes or when a caller needs the full document.
type Workspace struct {
	id         string
	mu         sync.Mutex
	canonical  *points.Document
	selectedID string
	working    *points.Resort
	rev        uint64
}

// NewWorkspace returns an empty workspace with no document loaded.
func NewWorkspace() *Workspace {
	return &Workspace{id: uuid.NewString()}
}

// ID identifies this workspace. Derived-data caches shared across sessions
// must include it in their keys so that sessions never see each other's data.
func (w *Workspace) ID() string {
	return w.id
}

// Load replaces the workspace content with a freshly parsed document. Any
// selection and staged edits are discarded. A payload that fails to parse or
// fails structural validation leaves the workspace untouched and returns
// ErrFormat.
func (w *Workspace) Load(payload []byte) error {
	doc, err := points.Unmarshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.canonical = doc
	w.selectedID = ""
	w.working = nil
	w.rev++
	return nil
}

// LoadDocument replaces the workspace content with an in-memory document.
func (w *Workspace) LoadDocument(doc *points.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.canonical = doc
	w.selectedID = ""
	w.working = nil
	w.rev++
}

// HasDocument reports whether a document is loaded.
func (w *Workspace) HasDocument() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canonical != nil
}

// Revision is a counter bumped on every content change. Callers use it to
// detect staleness of derived data.
func (w *Workspace) Revision() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rev
}

// SelectedID returns the ID of the currently selected resort, or empty.
func (w *Workspace) SelectedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedID
}

// Select switches the working copy to another resort. Staged edits on the
// previous selection are folded into the canonical document first, then a
// fresh working copy of the new resort is taken. Selecting an unknown resort
// returns ErrNotFound and leaves the previous selection in place.
func (w *Workspace) Select(resortID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return ErrNoDocument
	}
	if w.canonical.FindResort(resortID) == nil {
		return fmt.Errorf("%w: resort %s", ErrNotFound, resortID)
	}
	w.reconcileLocked()
	w.selectedID = resortID
	w.working = w.canonical.FindResort(resortID).Clone()
	return nil
}

// UpdateSelected runs fn against the working copy of the selected resort.
// The revision is bumped only when fn succeeds.
func (w *Workspace) UpdateSelected(fn func(*points.Resort) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return ErrNoDocument
	}
	if w.working == nil {
		return fmt.Errorf("%w: no resort selected", ErrNotFound)
	}
	if err := fn(w.working); err != nil {
		return err
	}
	w.rev++
	return nil
}

// UpdateDocument runs fn against the full canonical document with staged
// edits folded in first. The working copy is refreshed afterwards so the
// change is visible through the selection too.
func (w *Workspace) UpdateDocument(fn func(*points.Document) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return ErrNoDocument
	}
	w.reconcileLocked()
	if err := fn(w.canonical); err != nil {
		return err
	}
	w.materializeLocked()
	w.rev++
	return nil
}

// Snapshot folds staged edits into the canonical document and returns a deep
// copy of it.
func (w *Workspace) Snapshot() (*points.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return nil, ErrNoDocument
	}
	w.reconcileLocked()
	return w.canonical.Clone(), nil
}

// Serialize folds staged edits in and renders the canonical byte form.
func (w *Workspace) Serialize() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return nil, ErrNoDocument
	}
	w.reconcileLocked()
	return points.Marshal(w.canonical)
}

// Verify checks whether the payload's canonical form matches the current
// document state, staged edits included.
func (w *Workspace) Verify(payload []byte) (bool, error) {
	other, err := points.Unmarshal(payload)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return false, ErrNoDocument
	}
	w.reconcileLocked()
	return points.Equal(w.canonical, other), nil
}

// Merge imports resorts from another document. A non-empty resortIDs list
// restricts the import to those IDs; resorts whose ID already exists are
// skipped either way, and the rest are appended in their incoming order.
func (w *Workspace) Merge(payload []byte, resortIDs []string) (MergeResult, error) {
	other, err := points.Unmarshal(payload)
	if err != nil {
		return MergeResult{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return MergeResult{}, ErrNoDocument
	}
	w.reconcileLocked()

	var selected map[string]bool
	if len(resortIDs) > 0 {
		selected = make(map[string]bool, len(resortIDs))
		for _, id := range resortIDs {
			selected[id] = true
		}
	}

	result := MergeResult{Skipped: []string{}}
	for _, incoming := range other.Resorts {
		if incoming == nil {
			continue
		}
		if selected != nil && !selected[incoming.ID] {
			continue
		}
		if w.canonical.FindResort(incoming.ID) != nil {
			result.Skipped = append(result.Skipped, incoming.ID)
			continue
		}
		w.canonical.Resorts = append(w.canonical.Resorts, incoming.Clone())
		result.Added++
	}
	if result.Added > 0 {
		w.rev++
	}
	return result, nil
}

// CreateResort appends a new resort, deriving a unique ID and code from the
// display name when the caller left them blank.
func (w *Workspace) CreateResort(params CreateResortParams) (*points.Resort, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return nil, ErrNoDocument
	}
	w.reconcileLocked()

	id := points.MakeUnique(points.GenerateResortID(params.DisplayName), func(candidate string) bool {
		return w.canonical.FindResort(candidate) != nil
	})
	code := strings.TrimSpace(params.Code)
	if code == "" {
		code = points.GenerateResortCode(params.DisplayName)
	}
	resort := &points.Resort{
		ID:          id,
		DisplayName: strings.TrimSpace(params.DisplayName),
		Code:        code,
		ResortName:  strings.TrimSpace(params.ResortName),
		Address:     strings.TrimSpace(params.Address),
		Timezone:    strings.TrimSpace(params.Timezone),
		Years:       map[string]*points.Year{},
	}
	w.canonical.Resorts = append(w.canonical.Resorts, resort)
	w.rev++
	return resort.Clone(), nil
}

// CloneResort duplicates an existing resort under a new unique ID with
// " (Copy)" appended to the display name.
func (w *Workspace) CloneResort(resortID string) (*points.Resort, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return nil, ErrNoDocument
	}
	w.reconcileLocked()

	source := w.canonical.FindResort(resortID)
	if source == nil {
		return nil, fmt.Errorf("%w: resort %s", ErrNotFound, resortID)
	}
	clone := source.Clone()
	clone.DisplayName = source.DisplayName + " (Copy)"
	clone.ID = points.MakeUnique(points.GenerateResortID(clone.DisplayName), func(candidate string) bool {
		return w.canonical.FindResort(candidate) != nil
	})
	w.canonical.Resorts = append(w.canonical.Resorts, clone)
	w.rev++
	return clone.Clone(), nil
}

// RenameResort changes a resort's display name in place.
func (w *Workspace) RenameResort(params RenameResortParams) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return ErrNoDocument
	}
	w.reconcileLocked()

	resort := w.canonical.FindResort(params.ResortID)
	if resort == nil {
		return fmt.Errorf("%w: resort %s", ErrNotFound, params.ResortID)
	}
	resort.DisplayName = strings.TrimSpace(params.DisplayName)
	w.materializeLocked()
	w.rev++
	return nil
}

// DeleteResort removes a resort from the canonical document. Staged edits
// for it are discarded rather than reconciled; deleting the selected resort
// clears the selection.
func (w *Workspace) DeleteResort(resortID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canonical == nil {
		return ErrNoDocument
	}
	index := w.canonical.ResortIndex(resortID)
	if index < 0 {
		return fmt.Errorf("%w: resort %s", ErrNotFound, resortID)
	}
	w.canonical.Resorts = append(w.canonical.Resorts[:index], w.canonical.Resorts[index+1:]...)
	if w.selectedID == resortID {
		w.selectedID = ""
		w.working = nil
	}
	w.rev++
	return nil
}

func (w *Workspace) reconcileLocked() {
	if w.selectedID == "" || w.working == nil || w.canonical == nil {
		return
	}
	index := w.canonical.ResortIndex(w.selectedID)
	if index < 0 {
		return
	}
	w.canonical.Resorts[index] = w.working.Clone()
}

func (w *Workspace) materializeLocked() {
	if w.selectedID == "" || w.canonical == nil {
		return
	}
	resort := w.canonical.FindResort(w.selectedID)
	if resort == nil {
		w.selectedID = ""
		w.working = nil
		return
	}
	w.working = resort.Clone()
}

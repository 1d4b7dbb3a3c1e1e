package annotator

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Policy controls how entering an unannotated row seeds the selection.
type Policy struct {
	// DefaultToPreCorrection seeds the selection from the 校对前 tokens when a
	// row has no stored annotation yet. With it unset, unannotated rows start
	// with an empty selection.
	DefaultToPreCorrection bool
}

// Session is the per-operator annotation state machine. It owns the current
// row pointer and the in-progress selection for that row; every navigation
// commits the selection before the pointer moves, so no choice is lost.
//
// A Session assumes a single writer: it performs no locking and clobbers
// whatever another process wrote to the same progress file.
type Session struct {
	store    *ProgressStore
	policy   Policy
	logger   *log.Logger
	index    int
	selected []string
}

// NewSession points the row pointer at the first unannotated row, or row 0
// when every row already carries an annotation.
func NewSession(store *ProgressStore, policy Policy, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{store: store, policy: policy, logger: logger}
	s.EnterRow(firstUnannotated(store))
	done, total := s.Progress()
	logger.Printf("session start: %d/%d rows annotated, at row %d", done, total, s.index)
	return s
}

func firstUnannotated(store *ProgressStore) int {
	for i := 0; i < store.Len(); i++ {
		row, err := store.Row(i)
		if err != nil {
			break
		}
		if StateOf(row.Corrected) == StateUnannotated {
			return i
		}
	}
	return 0
}

// EnterRow points the session at index and loads that row's stored selection.
// An out-of-range index falls back to row 0.
func (s *Session) EnterRow(index int) {
	if index < 0 || index >= s.store.Len() {
		index = 0
	}
	s.index = index
	row, err := s.store.Row(index)
	if err != nil {
		s.selected = nil
		return
	}
	s.selected = splitTokens(row.Corrected)
	if len(s.selected) == 0 && s.policy.DefaultToPreCorrection {
		s.selected = splitTokens(row.PreCorrection)
	}
}

// Toggle selects token, or cancels it when it is already selected. Insertion
// order is preserved for serialization; duplicates never enter the list.
func (s *Session) Toggle(token string) {
	for i, t := range s.selected {
		if t == token {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, token)
}

// ToggleNotAWord toggles the N/A classification. It coexists with concrete
// tokens in the selection; mutual exclusion is enforced at commit time.
func (s *Session) ToggleNotAWord() { s.Toggle(NotAWord) }

// IsSelected reports whether token is in the current selection.
func (s *Session) IsSelected(token string) bool {
	for _, t := range s.selected {
		if t == token {
			return true
		}
	}
	return false
}

// Save commits the current selection into the progress row and persists the
// whole table. A persistence failure leaves the in-memory state intact and is
// reported to the caller.
func (s *Session) Save() error {
	if s.store.Len() == 0 {
		return nil
	}
	if err := s.store.SetCorrected(s.index, serializeSelection(s.selected)); err != nil {
		return err
	}
	if err := s.store.Persist(); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// serializeSelection space-joins the chosen tokens. The N/A sentinel is an
// overriding classification: when present, the stored value is exactly "N/A",
// never a mixture with concrete tokens.
func serializeSelection(selected []string) string {
	for _, t := range selected {
		if t == NotAWord {
			return NotAWord
		}
	}
	return strings.Join(selected, " ")
}

// Navigate commits the current row, moves the pointer by delta saturating at
// both table ends, and loads the target row's selection.
func (s *Session) Navigate(delta int) error { return s.moveTo(s.index + delta) }

// Jump commits the current row and moves the pointer directly to index; used
// for returning to a previously annotated row from the review listing.
func (s *Session) Jump(index int) error { return s.moveTo(index) }

func (s *Session) moveTo(index int) error {
	if err := s.Save(); err != nil {
		return err
	}
	if last := s.store.Len() - 1; index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	s.EnterRow(index)
	return nil
}

// Index returns the 0-based current row pointer.
func (s *Session) Index() int { return s.index }

// Len returns the number of task rows.
func (s *Session) Len() int { return s.store.Len() }

// CurrentRow returns the row under the pointer.
func (s *Session) CurrentRow() Row {
	row, _ := s.store.Row(s.index)
	return row
}

// Candidates parses and sorts the current row's candidates for display,
// descending by frequency.
func (s *Session) Candidates() ([]Candidate, error) {
	return SortCandidates(ParseCandidates(s.CurrentRow().Candidates))
}

// Selected returns a copy of the in-progress selection in insertion order.
func (s *Session) Selected() []string {
	return append([]string(nil), s.selected...)
}

// Progress reports how many rows carry an annotation, and the total count.
func (s *Session) Progress() (done, total int) {
	total = s.store.Len()
	for i := 0; i < total; i++ {
		row, err := s.store.Row(i)
		if err != nil {
			continue
		}
		if StateOf(row.Corrected) != StateUnannotated {
			done++
		}
	}
	return done, total
}

// Recent projects the annotated rows most-recent-first for the review listing.
func (s *Session) Recent(limit int) []ReviewEntry { return Recent(s.store, limit) }

// ExportCSV returns the durable-format snapshot of the whole table.
func (s *Session) ExportCSV() ([]byte, error) { return s.store.ExportCSV() }

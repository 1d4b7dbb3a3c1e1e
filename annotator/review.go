package annotator

// DefaultReviewLimit caps the recent-annotations listing.
const DefaultReviewLimit = 500

// ReviewEntry is one line of the recent-annotations listing. Index is the
// original row position, usable with Session.Jump.
type ReviewEntry struct {
	Index        int
	OriginalForm string
	Corrected    string
}

// Recent projects the annotated rows most-recent-first, capped to limit. The
// table carries no timestamps, so recency is approximated by reverse row
// order. Recomputed on every call; it is a read-only projection.
func Recent(store *ProgressStore, limit int) []ReviewEntry {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}
	out := make([]ReviewEntry, 0, min(limit, store.Len()))
	for i := store.Len() - 1; i >= 0 && len(out) < limit; i-- {
		row, err := store.Row(i)
		if err != nil {
			continue
		}
		if StateOf(row.Corrected) == StateUnannotated {
			continue
		}
		out = append(out, ReviewEntry{
			Index:        i,
			OriginalForm: row.OriginalForm,
			Corrected:    row.Corrected,
		})
	}
	return out
}

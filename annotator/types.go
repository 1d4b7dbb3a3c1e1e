package annotator

// Column names of the source dataset. The progress file preserves them
// verbatim, in this order.
const (
	ColOriginalForm  = "原形"
	ColPreCorrection = "校对前"
	ColCorrected     = "校对后"
	ColCandidates    = "候选项"
)

// NotAWord is the sentinel stored in 校对后 when the operator marks a row as
// not being a word. It overrides any concrete token selection at commit time.
const NotAWord = "N/A"

// RequiredColumns returns the four dataset columns in durable-file order.
func RequiredColumns() []string {
	return []string{ColOriginalForm, ColPreCorrection, ColCorrected, ColCandidates}
}

// Row is one entry of the annotation table.
type Row struct {
	OriginalForm  string
	PreCorrection string
	Corrected     string
	Candidates    string
}

// Candidate is a weighted replacement suggestion decoded from the 候选项
// column. Freq keeps the original string form; SortCandidates requires it to
// parse as a base-10 integer.
type Candidate struct {
	Text string
	Freq string
}

// State classifies a row's annotation outcome.
type State string

const (
	// StateUnannotated means 校对后 is still empty.
	StateUnannotated State = "unannotated"
	// StateNotAWord means the row was flagged with the N/A sentinel.
	StateNotAWord State = "not_a_word"
	// StateAnnotated means 校对后 holds a space-joined token list.
	StateAnnotated State = "annotated"
)

// StateOf reports the annotation state encoded in a 校对后 value.
func StateOf(corrected string) State {
	switch corrected {
	case "":
		return StateUnannotated
	case NotAWord:
		return StateNotAWord
	default:
		return StateAnnotated
	}
}

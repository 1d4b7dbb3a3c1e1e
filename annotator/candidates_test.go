package annotator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidates(t *testing.T) {
	got := ParseCandidates("[example1_1,10] [example1_2,5]")
	require.Equal(t, []Candidate{
		{Text: "example1_1", Freq: "10"},
		{Text: "example1_2", Freq: "5"},
	}, got)
}

func TestParseCandidatesEmpty(t *testing.T) {
	assert.Empty(t, ParseCandidates(""))
	assert.Empty(t, ParseCandidates("   "))
}

func TestParseCandidatesMalformedTokenDropped(t *testing.T) {
	got := ParseCandidates("[no_comma] [ok,3]")
	require.Equal(t, []Candidate{{Text: "ok", Freq: "3"}}, got)

	assert.Empty(t, ParseCandidates("[no_comma]"))
	assert.Empty(t, ParseCandidates("x"))
}

func TestParseCandidatesCommaSpaceCollapsed(t *testing.T) {
	got := ParseCandidates("[發, 10] [髮, 5]")
	require.Equal(t, []Candidate{
		{Text: "發", Freq: "10"},
		{Text: "髮", Freq: "5"},
	}, got)
}

func TestParseCandidatesStripsAnyDelimiter(t *testing.T) {
	// The first and last character go unchecked, whatever they are.
	got := ParseCandidates("【簡,12】 (繁,7)")
	require.Equal(t, []Candidate{
		{Text: "簡", Freq: "12"},
		{Text: "繁", Freq: "7"},
	}, got)
}

func TestSortCandidatesDescendingStable(t *testing.T) {
	got, err := SortCandidates([]Candidate{
		{Text: "a", Freq: "5"},
		{Text: "b", Freq: "20"},
		{Text: "c", Freq: "20"},
	})
	require.NoError(t, err)
	require.Equal(t, []Candidate{
		{Text: "b", Freq: "20"},
		{Text: "c", Freq: "20"},
		{Text: "a", Freq: "5"},
	}, got)
}

func TestSortCandidatesNonNumericFrequency(t *testing.T) {
	_, err := SortCandidates([]Candidate{{Text: "a", Freq: "many"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "many")
}

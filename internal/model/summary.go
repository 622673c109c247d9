package model

// ItemGroup collects the rows of one item code within a category bucket,
// so a reviewer can jump from "item X has 4 low-confidence rows" to each
// specific row.
type ItemGroup struct {
	ItemCode   string
	RowIndices []int
}

// Summary is the classification outcome over a whole dataset: counts and
// per-item-code groupings for each match category, plus the item codes a
// reviewer has bulk-accepted.
type Summary struct {
	Counts   map[MatchCategory]int
	Groups   map[MatchCategory][]ItemGroup // sorted by row count descending
	Accepted []string                      // sorted item codes
}

// Total returns the number of classified rows across all categories.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

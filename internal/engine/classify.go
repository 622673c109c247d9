package engine

import (
	"sort"

	"github.com/rowanfields/pricelens/internal/model"
)

// BuildSummary partitions enriched rows into the four match categories
// and groups each category by item code with the row indices a reviewer
// needs for navigation. Groups are sorted by row count descending so the
// largest problems surface first; ties order by item code for
// deterministic output.
//
// The category is exactly the one derived during enrichment; no further
// logic happens here beyond aggregation.
func BuildSummary(rows []model.EnrichedRow, accepted []string) model.Summary {
	summary := model.Summary{
		Counts:   make(map[model.MatchCategory]int),
		Groups:   make(map[model.MatchCategory][]model.ItemGroup),
		Accepted: accepted,
	}

	byItem := make(map[model.MatchCategory]map[string][]int)
	for _, row := range rows {
		if !row.Classified() {
			continue
		}
		summary.Counts[row.Category]++
		if byItem[row.Category] == nil {
			byItem[row.Category] = make(map[string][]int)
		}
		byItem[row.Category][row.ItemCode] = append(byItem[row.Category][row.ItemCode], row.Index)
	}

	for category, items := range byItem {
		groups := make([]model.ItemGroup, 0, len(items))
		for code, indices := range items {
			groups = append(groups, model.ItemGroup{ItemCode: code, RowIndices: indices})
		}
		sort.Slice(groups, func(i, j int) bool {
			if len(groups[i].RowIndices) != len(groups[j].RowIndices) {
				return len(groups[i].RowIndices) > len(groups[j].RowIndices)
			}
			return groups[i].ItemCode < groups[j].ItemCode
		})
		summary.Groups[category] = groups
	}

	return summary
}

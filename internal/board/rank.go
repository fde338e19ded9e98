package board

import (
	"sort"

	"squares-board/internal/domain"
)

// ComputeRanks converts the current scores into standard competition ranks:
// tied players share a rank and the next distinct score skips ahead by the
// tie count, so scores [10 8 8 5] rank as 1, 2, 2, 4. The map is keyed by
// score. Empty input yields an empty map; the function is total.
func ComputeRanks(players []domain.Player) map[int]domain.RankEntry {
	counts := make(map[int]int, len(players))
	for _, p := range players {
		counts[p.Score]++
	}

	scores := make([]int, 0, len(counts))
	for score := range counts {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	ranks := make(map[int]domain.RankEntry, len(scores))
	running := 1
	for _, score := range scores {
		ranks[score] = domain.RankEntry{Rank: running, TieCount: counts[score]}
		running += counts[score]
	}
	return ranks
}

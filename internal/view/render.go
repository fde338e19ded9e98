// Package view formats board state as plain text tables. It is pure
// formatting over domain types; callers own all I/O decisions.
package view

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"squares-board/internal/board"
	"squares-board/internal/domain"
)

// Standings writes the ranked scoreboard as an aligned table. Tied ranks are
// marked with a T- prefix.
func Standings(w io.Writer, snap domain.Snapshot) {
	ranks := board.ComputeRanks(snap.Players)

	players := make([]domain.Player, len(snap.Players))
	copy(players, snap.Players)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].DisplayName < players[j].DisplayName
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tTREND")
	for _, p := range players {
		entry := ranks[p.Score]
		rank := strconv.Itoa(entry.Rank)
		if entry.TieCount > 1 {
			rank = "T-" + rank
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", rank, p.DisplayName, p.Score, arrow(snap.Trends[p.Identity]))
	}
	tw.Flush()
}

// Questions writes the prop questions with their resolution status.
func Questions(w io.Writer, questions []domain.Question) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "QUESTION\tANSWER\tPOINTS")
	for _, q := range questions {
		answer := q.OfficialAnswer
		if answer == "" {
			answer = "pending"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", q.Text, answer, q.Points)
	}
	tw.Flush()
}

// WhatIf writes the projection panel for the tracked player.
func WhatIf(w io.Writer, name string, result *domain.WhatIfResult) {
	if result == nil {
		fmt.Fprintf(w, "%s: nothing left to project\n", name)
		return
	}
	fmt.Fprintf(w, "What-if for %s (%d open questions, %d potential points)\n",
		name, result.UnansweredCount, result.PotentialPoints)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  best case\t%d pts\trank %d of %d\n", result.BestCaseScore, result.BestCaseRank, result.TotalPlayers)
	fmt.Fprintf(tw, "  current\t%d pts\trank %d of %d\n", result.CurrentScore, result.CurrentRank, result.TotalPlayers)
	fmt.Fprintf(tw, "  worst case\t%d pts\trank %d of %d\n", result.WorstCaseScore, result.WorstCaseRank, result.TotalPlayers)
	tw.Flush()
}

func arrow(t domain.Trend) string {
	switch t {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "same":
		return "→"
	case "":
		return "-"
	default:
		return string(t)
	}
}

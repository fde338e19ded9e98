package board

import "squares-board/internal/domain"

// CalculateWhatIf projects the selected player's best-case, current, and
// worst-case final rank from their unresolved answers. It returns nil when
// there is nothing to project: no selection, no answer data, an empty board,
// or every answer already resolved.
//
// Each unresolved answer counts as a flat single point because multipliers
// are unknown before resolution. The best case assumes no opponent gains
// another point; the worst case assumes every opponent independently gains
// the same potential points. Rank comparisons are strict, so ties never push
// a player down. The selected player is excluded from the opponent loops by
// identity; an identity missing from the list simply never matches.
func CalculateWhatIf(selected *domain.Player, players []domain.Player, answers []domain.AnswerRecord) *domain.WhatIfResult {
	if selected == nil || answers == nil || len(players) == 0 {
		return nil
	}

	potential := 0
	for _, a := range answers {
		if a.Unresolved() {
			potential++
		}
	}
	if potential == 0 {
		return nil
	}

	current := selected.Score
	best := current + potential
	worst := current

	currentRank, bestRank, worstRank := 1, 1, 1
	for _, p := range players {
		if p.Identity == selected.Identity {
			continue
		}
		if p.Score > current {
			currentRank++
		}
		if p.Score > best {
			bestRank++
		}
		if p.Score+potential > worst {
			worstRank++
		}
	}

	return &domain.WhatIfResult{
		UnansweredCount: potential,
		PotentialPoints: potential,
		CurrentScore:    current,
		BestCaseScore:   best,
		WorstCaseScore:  worst,
		CurrentRank:     currentRank,
		BestCaseRank:    bestRank,
		WorstCaseRank:   worstRank,
		TotalPlayers:    len(players),
	}
}

package view

import (
	"strings"
	"testing"

	"squares-board/internal/domain"
)

func TestStandingsMarksTies(t *testing.T) {
	snap := domain.Snapshot{
		Players: []domain.Player{
			{Identity: "a@example.com", DisplayName: "Alice", Score: 10},
			{Identity: "b@example.com", DisplayName: "Bob", Score: 8},
			{Identity: "c@example.com", DisplayName: "Carol", Score: 8},
			{Identity: "d@example.com", DisplayName: "Dave", Score: 5},
		},
		Trends: map[string]domain.Trend{"a@example.com": "up"},
	}

	var out strings.Builder
	Standings(&out, snap)
	got := out.String()

	if !strings.Contains(got, "T-2") {
		t.Fatalf("expected tied rank marker in:\n%s", got)
	}
	aliceLine := lineContaining(t, got, "Alice")
	if !strings.Contains(aliceLine, "↑") {
		t.Fatalf("expected trend arrow on %q", aliceLine)
	}
	daveLine := lineContaining(t, got, "Dave")
	if !strings.HasPrefix(strings.TrimSpace(daveLine), "4") {
		t.Fatalf("expected Dave at rank 4, got %q", daveLine)
	}
	if strings.Index(got, "Alice") > strings.Index(got, "Dave") {
		t.Fatalf("expected leader printed first:\n%s", got)
	}
}

func TestQuestionsShowPendingAnswers(t *testing.T) {
	var out strings.Builder
	Questions(&out, []domain.Question{
		{Text: "Coin toss?", OfficialAnswer: "heads", Points: 1},
		{Text: "First TD?", Points: 2},
	})
	got := out.String()

	if !strings.Contains(got, "heads") {
		t.Fatalf("expected official answer in:\n%s", got)
	}
	if !strings.Contains(got, "pending") {
		t.Fatalf("expected pending marker in:\n%s", got)
	}
}

func TestWhatIfPanel(t *testing.T) {
	var out strings.Builder
	WhatIf(&out, "Alice", &domain.WhatIfResult{
		UnansweredCount: 2,
		PotentialPoints: 2,
		CurrentScore:    5,
		BestCaseScore:   7,
		WorstCaseScore:  5,
		CurrentRank:     2,
		BestCaseRank:    1,
		WorstCaseRank:   3,
		TotalPlayers:    4,
	})
	got := out.String()

	for _, want := range []string{"Alice", "rank 1 of 4", "rank 2 of 4", "rank 3 of 4", "2 open questions"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestWhatIfNilResult(t *testing.T) {
	var out strings.Builder
	WhatIf(&out, "Alice", nil)
	if !strings.Contains(out.String(), "nothing left to project") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func lineContaining(t *testing.T, s, substr string) string {
	t.Helper()
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	t.Fatalf("no line containing %q in:\n%s", substr, s)
	return ""
}

package board_test

import (
	"testing"
	"time"

	"squares-board/internal/board"
	"squares-board/internal/domain"
)

func TestApplySnapshotReplacesEverything(t *testing.T) {
	b := board.New()
	b.ApplySnapshot(domain.Snapshot{
		Players:   playersWithScores(1, 2),
		Questions: []domain.Question{{Text: "old"}},
	})

	b.ApplySnapshot(domain.Snapshot{
		Players: playersWithScores(9),
		Trends:  map[string]domain.Trend{"a@example.com": "up"},
	})

	snap := b.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].Score != 9 {
		t.Fatalf("expected players replaced, got %+v", snap.Players)
	}
	if len(snap.Questions) != 0 {
		t.Fatalf("expected questions replaced by the new snapshot, got %+v", snap.Questions)
	}
	if snap.Trends["a@example.com"] != "up" {
		t.Fatalf("expected trend carried over, got %+v", snap.Trends)
	}
}

func TestApplyUpdateReplacesOnlyPresentFields(t *testing.T) {
	b := board.New()
	b.ApplySnapshot(domain.Snapshot{
		Players:   playersWithScores(1, 2),
		Questions: []domain.Question{{Text: "kept"}},
		Events:    []domain.Event{{Text: "kickoff", At: time.Now()}},
	})

	b.ApplyUpdate(domain.Update{Players: playersWithScores(5)})

	snap := b.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].Score != 5 {
		t.Fatalf("expected players replaced, got %+v", snap.Players)
	}
	if len(snap.Questions) != 1 || snap.Questions[0].Text != "kept" {
		t.Fatalf("expected questions untouched, got %+v", snap.Questions)
	}
	if len(snap.Events) != 1 {
		t.Fatalf("expected events untouched, got %+v", snap.Events)
	}

	// A present-but-empty field clears the state.
	b.ApplyUpdate(domain.Update{Events: []domain.Event{}})
	if snap := b.Snapshot(); len(snap.Events) != 0 {
		t.Fatalf("expected events cleared, got %+v", snap.Events)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	b := board.New()
	b.ApplySnapshot(domain.Snapshot{Players: playersWithScores(1)})

	updates, cancel := b.Subscribe()
	defer cancel()

	initial := <-updates
	if len(initial.Players) != 1 {
		t.Fatalf("expected primed snapshot, got %+v", initial.Players)
	}

	b.ApplyUpdate(domain.Update{Players: playersWithScores(3, 4)})

	next := <-updates
	if len(next.Players) != 2 {
		t.Fatalf("expected updated snapshot, got %+v", next.Players)
	}
}

func TestSubscribeCancelTwiceIsSafe(t *testing.T) {
	b := board.New()
	_, cancel := b.Subscribe()
	cancel()
	cancel()
}

func TestPlayerLookup(t *testing.T) {
	b := board.New()
	b.ApplySnapshot(domain.Snapshot{Players: []domain.Player{
		{Identity: "a@example.com", DisplayName: "A", Score: 4},
	}})

	if p, ok := b.Player("a@example.com"); !ok || p.Score != 4 {
		t.Fatalf("expected lookup hit, got %+v %v", p, ok)
	}
	if _, ok := b.Player("nobody@example.com"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestSnapshotCopiesState(t *testing.T) {
	b := board.New()
	b.ApplySnapshot(domain.Snapshot{Players: playersWithScores(1, 2)})

	snap := b.Snapshot()
	snap.Players[0].Score = 99
	snap.Trends = map[string]domain.Trend{"x": "up"}

	if fresh := b.Snapshot(); fresh.Players[0].Score == 99 {
		t.Fatal("snapshot aliases board state")
	}
}

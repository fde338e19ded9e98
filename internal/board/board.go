package board

import (
	"sync"
	"time"

	"squares-board/internal/domain"
)

// Board holds the latest leaderboard state and fans updates out to
// subscribers. Snapshots replace every field wholesale; push updates replace
// each present field independently (last write wins per field). There is no
// incremental mutation or diffing.
type Board struct {
	now         func() time.Time
	mu          sync.RWMutex
	players     []domain.Player
	questions   []domain.Question
	trends      map[string]domain.Trend
	events      []domain.Event
	updatedAt   time.Time
	subscribers map[chan domain.Snapshot]struct{}
}

func New() *Board {
	return NewWithClock(time.Now)
}

// NewWithClock allows deterministic timestamps in tests.
func NewWithClock(now func() time.Time) *Board {
	return &Board{
		now:         now,
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
}

// ApplySnapshot replaces the whole board state.
func (b *Board) ApplySnapshot(snap domain.Snapshot) domain.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.players = snap.Players
	b.questions = snap.Questions
	b.trends = snap.Trends
	b.events = snap.Events
	b.updatedAt = b.now()
	return b.broadcastLocked()
}

// ApplyUpdate replaces only the fields present in the push frame.
func (b *Board) ApplyUpdate(update domain.Update) domain.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Players != nil {
		b.players = update.Players
	}
	if update.Questions != nil {
		b.questions = update.Questions
	}
	if update.Trends != nil {
		b.trends = update.Trends
	}
	if update.Events != nil {
		b.events = update.Events
	}
	b.updatedAt = b.now()
	return b.broadcastLocked()
}

// Snapshot returns a copy of the current board state.
func (b *Board) Snapshot() domain.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Player looks up a contestant by identity.
func (b *Board) Player(identity string) (domain.Player, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.players {
		if p.Identity == identity {
			return p, true
		}
	}
	return domain.Player{}, false
}

// Subscribe returns a channel that receives a snapshot on every state
// change, primed with the current state. The caller must invoke the
// returned cancel function to avoid leaks.
func (b *Board) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	initial := b.snapshotLocked()
	b.mu.Unlock()

	ch <- initial

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Board) broadcastLocked() domain.Snapshot {
	snap := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			// A slow subscriber only ever needs the newest snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (b *Board) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Players:   make([]domain.Player, len(b.players)),
		Questions: make([]domain.Question, len(b.questions)),
		Events:    make([]domain.Event, len(b.events)),
		UpdatedAt: b.updatedAt,
	}
	copy(snap.Players, b.players)
	copy(snap.Questions, b.questions)
	copy(snap.Events, b.events)
	if b.trends != nil {
		snap.Trends = make(map[string]domain.Trend, len(b.trends))
		for identity, trend := range b.trends {
			snap.Trends[identity] = trend
		}
	}
	return snap
}

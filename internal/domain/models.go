package domain

import "time"

// Player is one contestant on the board. Identity is the unique key
// (typically an email address); Score is mutated by the backend between
// snapshots, never locally.
type Player struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
}

// AnswerRecord is one player's answer to a single prop question.
// PointsAwarded is meaningful only once IsCorrect is settled.
type AnswerRecord struct {
	QuestionText   string `json:"questionText"`
	UserAnswer     string `json:"userAnswer"`
	OfficialAnswer string `json:"officialAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	PointsAwarded  int    `json:"pointsAwarded"`
}

// Unresolved reports whether the record was answered by the player but has
// no published official answer yet.
func (a AnswerRecord) Unresolved() bool {
	return a.OfficialAnswer == "" && a.UserAnswer != ""
}

// Question is display-only contest metadata.
type Question struct {
	Text           string `json:"text"`
	OfficialAnswer string `json:"officialAnswer"`
	Points         int    `json:"points"`
}

// Trend is the direction of a player's recent score movement.
// Known values are "up", "down" and "same"; anything else is rendered as-is.
type Trend string

// Event is a free-form notice pushed alongside score updates.
type Event struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// RankEntry is a derived competition-ranking slot: tied players share Rank
// and the next distinct score skips ahead by TieCount. Recomputed on every
// snapshot, never persisted.
type RankEntry struct {
	Rank     int `json:"rank"`
	TieCount int `json:"tieCount"`
}

// WhatIfResult projects the selected player's final standing from their
// unresolved answers.
type WhatIfResult struct {
	UnansweredCount int `json:"unansweredCount"`
	PotentialPoints int `json:"potentialPoints"`
	CurrentScore    int `json:"currentScore"`
	BestCaseScore   int `json:"bestCaseScore"`
	WorstCaseScore  int `json:"worstCaseScore"`
	CurrentRank     int `json:"currentRank"`
	BestCaseRank    int `json:"bestCaseRank"`
	WorstCaseRank   int `json:"worstCaseRank"`
	TotalPlayers    int `json:"totalPlayers"`
}

// Snapshot is a full replacement of board state, delivered by the initial
// fetch or assembled after a push update.
type Snapshot struct {
	Players   []Player         `json:"scores"`
	Questions []Question       `json:"questions"`
	Trends    map[string]Trend `json:"trends"`
	Events    []Event          `json:"events"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Update carries the optional fields of a push frame. A nil field was absent
// from the frame and leaves the corresponding board state untouched; a
// non-nil empty field replaces it with empty state.
type Update struct {
	Players   []Player         `json:"scores"`
	Questions []Question       `json:"questions"`
	Trends    map[string]Trend `json:"trends"`
	Events    []Event          `json:"events"`
}

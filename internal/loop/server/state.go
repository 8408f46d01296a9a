package server

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	seq      int // Used for deterministic tie-break when scores are equal
}

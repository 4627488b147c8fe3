package service

// Scorer scores a single message. Implementations must be safe for
// concurrent use.
type Scorer interface {
	Score(text string) ScoreResult
}

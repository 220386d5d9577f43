// Package daily picks one deterministic answer per calendar day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/session-server/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Dictionary is the part of a word list the daily source needs.
type Dictionary interface {
	Answers() []string
	IsWord(candidate string) bool
}

// Source is a game.WordSource whose secret changes once per UTC day.
type Source struct {
	Words Dictionary
	Salt  string
	Now   func() time.Time // defaults to time.Now
}

var _ game.WordSource = Source{}

// GetWord returns today's answer.
func (s Source) GetWord() string {
	answers := s.Words.Answers()
	if len(answers) == 0 {
		return ""
	}
	return answers[WordIndex(s.now(), s.Salt, len(answers))]
}

// IsWord delegates to the wrapped dictionary.
func (s Source) IsWord(candidate string) bool {
	return s.Words.IsWord(candidate)
}

// On returns a copy of s pinned to t, so its word and date cannot straddle
// midnight.
func (s Source) On(t time.Time) Source {
	s.Now = func() time.Time { return t }
	return s
}

// Date returns today's key.
func (s Source) Date() string {
	return DateKey(s.now())
}

func (s Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

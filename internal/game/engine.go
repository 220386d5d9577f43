// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create sessions with a secret from a WordSource and a bounded row count.
//   - Validate and record guesses (row budget, length, dictionary).
//   - Evaluate guesses letter by letter against the secret.
//   - Report end conditions: solved or out of rows.
//
// A Session is owned by a single caller and is not safe for concurrent use.
package game

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Session holds the state of one game.
type Session struct {
	id           string
	src          WordSource
	word         string  // secret, uppercase
	maxGuesses   int     // row budget
	guesses      []Guess // len == maxGuesses, filled in order
	currentGuess int     // number of filled rows

	rejectAfterSolved bool
	duplicateAware    bool
}

// Option configures a Session at construction.
type Option func(*Session)

// WithMaxGuesses sets the row budget (default 6).
func WithMaxGuesses(n int) Option {
	return func(s *Session) { s.maxGuesses = n }
}

// WithRejectAfterSolved makes SubmitGuess fail with ErrGameSolved once the
// secret has been found. Without it a solved session keeps accepting guesses
// until its rows run out.
func WithRejectAfterSolved() Option {
	return func(s *Session) { s.rejectAfterSolved = true }
}

// WithDuplicateAwareScoring switches evaluation to the two-pass algorithm that
// never reports more CORRECT/PRESENT tiles for a letter than the secret holds.
func WithDuplicateAwareScoring() Option {
	return func(s *Session) { s.duplicateAware = true }
}

// New constructs a session whose secret comes from src.
func New(src WordSource, opts ...Option) (*Session, error) {
	s := &Session{
		id:         uuid.NewString(),
		src:        src,
		maxGuesses: DefaultMaxGuesses,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxGuesses < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxGuesses, s.maxGuesses)
	}

	word := strings.ToUpper(strings.TrimSpace(src.GetWord()))
	if len(word) != WordLength || !isAlpha(word) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidSecret, word)
	}
	s.word = word

	s.guesses = make([]Guess, s.maxGuesses)
	for i := range s.guesses {
		s.guesses[i] = emptyGuess()
	}
	return s, nil
}

// EvaluateGuess scores word against the secret without touching session state.
// word must be WordLength letters long; SubmitGuess enforces that. A word of
// any other length evaluates to an empty row.
//
// By default a letter is CORRECT when it matches the secret at the same
// position, PRESENT when it occurs anywhere else in the secret and ABSENT
// otherwise. Repeated letters are not capped by the secret's letter counts.
func (s *Session) EvaluateGuess(word string) Guess {
	guess := []rune(strings.ToUpper(word))
	if len(guess) != WordLength {
		return emptyGuess()
	}
	if s.duplicateAware {
		return scoreTwoPass(s.word, guess)
	}
	var g Guess
	for i, c := range guess {
		switch {
		case c == rune(s.word[i]):
			g[i] = Letter{Char: string(c), Status: StatusCorrect}
		case strings.ContainsRune(s.word, c):
			g[i] = Letter{Char: string(c), Status: StatusPresent}
		default:
			g[i] = Letter{Char: string(c), Status: StatusAbsent}
		}
	}
	return g
}

// SubmitGuess validates word, evaluates it and stores it in the next row.
// Length is counted in characters after uppercasing.
// All checks run before any mutation; a failed call leaves the session as is.
func (s *Session) SubmitGuess(word string) error {
	if s.currentGuess >= s.maxGuesses {
		return fmt.Errorf("%w: all %d guesses used", ErrOutOfGuesses, s.maxGuesses)
	}
	word = strings.ToUpper(word)
	if n := utf8.RuneCountInString(word); n != WordLength {
		return fmt.Errorf("%w: %q has %d characters, want %d", ErrInvalidLength, word, n, WordLength)
	}
	if !s.src.IsWord(word) {
		return fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	if s.rejectAfterSolved && s.IsSolved() {
		return ErrGameSolved
	}

	s.guesses[s.currentGuess] = s.EvaluateGuess(word)
	s.currentGuess++
	return nil
}

// IsSolved reports whether the most recent guess matched the secret exactly.
func (s *Session) IsSolved() bool {
	if s.currentGuess == 0 {
		return false
	}
	for _, l := range s.guesses[s.currentGuess-1] {
		if l.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// ShouldEndGame reports whether the session is solved or out of rows.
func (s *Session) ShouldEndGame() bool {
	return s.IsSolved() || s.currentGuess >= s.maxGuesses
}

// State reports a coarse string representation of the session:
// "won", "lost" or "playing".
func (s *Session) State() string {
	switch {
	case s.IsSolved():
		return "won"
	case s.ShouldEndGame():
		return "lost"
	default:
		return "playing"
	}
}

// ID identifies the session to consumers such as the HTTP layer.
func (s *Session) ID() string { return s.id }

// Word returns the uppercase secret.
func (s *Session) Word() string { return s.word }

// MaxGuesses returns the row budget fixed at construction.
func (s *Session) MaxGuesses() int { return s.maxGuesses }

// CurrentGuess returns the number of filled rows, which is also the index of
// the next row to fill.
func (s *Session) CurrentGuess() int { return s.currentGuess }

// Remaining returns how many rows are still empty.
func (s *Session) Remaining() int { return s.maxGuesses - s.currentGuess }

// Guesses returns a copy of every row, filled or not.
func (s *Session) Guesses() []Guess {
	out := make([]Guess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// scoreTwoPass implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1 marks exact matches and counts the remaining secret letters.
// Pass 2 marks a non-matching letter PRESENT while unused copies remain.
func scoreTwoPass(secret string, guess []rune) Guess {
	var g Guess
	var counts [26]int

	for i, c := range guess {
		g[i].Char = string(c)
		if c == rune(secret[i]) {
			g[i].Status = StatusCorrect
		} else {
			counts[idx(rune(secret[i]))]++
		}
	}

	for i, c := range guess {
		if g[i].Status == StatusCorrect {
			continue
		}
		j := idx(c)
		if j >= 0 && j < 26 && counts[j] > 0 {
			g[i].Status = StatusPresent
			counts[j]--
		} else {
			g[i].Status = StatusAbsent
		}
	}
	return g
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(r rune) int { return int(r - 'A') }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

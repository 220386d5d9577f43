// internal/game/types.go
//
// Core type definitions for the Wordle session engine.
// Defines:
//   - Status: per-letter result of a guess (correct/present/absent/empty).
//   - Letter: one evaluated character.
//   - Guess:  a full row of evaluated letters.
//   - WordSource: the collaborator that supplies and validates words.

package game

import "errors"

// WordLength is the fixed number of letters in every secret word and guess.
const WordLength = 5

// DefaultMaxGuesses is the number of rows a session gets when none is configured.
const DefaultMaxGuesses = 6

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "CORRECT": letter is in the secret at the same position.
//   - "PRESENT": letter exists in the secret but at a different position.
//   - "ABSENT":  letter does not exist in the secret at all.
//   - "EMPTY":   placeholder for a slot that has not been guessed yet.
type Status string

const (
	StatusCorrect Status = "CORRECT"
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusEmpty   Status = "EMPTY"
)

// Letter is a single uppercase character and its status.
type Letter struct {
	Char   string `json:"letter"`
	Status Status `json:"status"`
}

// Guess is one evaluated row.
type Guess [WordLength]Letter

// emptyGuess is the value of an unfilled slot.
func emptyGuess() Guess {
	var g Guess
	for i := range g {
		g[i] = Letter{Status: StatusEmpty}
	}
	return g
}

// IsEmpty reports whether g is an unfilled slot.
func (g Guess) IsEmpty() bool {
	for _, l := range g {
		if l.Status != StatusEmpty {
			return false
		}
	}
	return true
}

// Word returns the guessed characters joined together.
func (g Guess) Word() string {
	b := make([]byte, 0, WordLength)
	for _, l := range g {
		b = append(b, l.Char...)
	}
	return string(b)
}

// WordSource supplies secret words and decides what counts as a word.
// Implementations may be backed by embedded lists, files, SQL, etc.
type WordSource interface {
	// GetWord returns a five-letter secret word.
	GetWord() string

	// IsWord reports whether candidate is a recognized dictionary word.
	IsWord(candidate string) bool
}

// Errors returned by Session. Callers match them with errors.Is.
var (
	ErrOutOfGuesses      = errors.New("out of guesses")
	ErrInvalidLength     = errors.New("invalid guess length")
	ErrUnknownWord       = errors.New("not in word list")
	ErrGameSolved        = errors.New("game already solved")
	ErrInvalidMaxGuesses = errors.New("max guesses must be positive")
	ErrInvalidSecret     = errors.New("secret word must be five letters")
)

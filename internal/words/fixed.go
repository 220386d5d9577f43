// internal/words/fixed.go
//
// Fixed word source.
// Used by tests and by the HTTP layer when a caller picks the answer; guesses
// can still be checked against a real dictionary through Valid.

package words

import "strings"

// Fixed is a WordSource with a predetermined secret. If Valid is nil every
// candidate is accepted; otherwise only the listed words and the secret are.
type Fixed struct {
	Secret string
	Valid  interface{ IsWord(string) bool }
}

// GetWord returns the secret, uppercased.
func (f Fixed) GetWord() string { return strings.ToUpper(f.Secret) }

// IsWord accepts the secret itself and defers everything else to Valid.
func (f Fixed) IsWord(candidate string) bool {
	if strings.EqualFold(candidate, f.Secret) {
		return true
	}
	if f.Valid == nil {
		return true
	}
	return f.Valid.IsWord(candidate)
}

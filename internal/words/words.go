// internal/words/words.go
//
// Word sources for the session engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Implement game.WordSource: GetWord picks a random answer, IsWord checks the allowed set.
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 uppercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//  1. If both paths are set, answers come from the first and allowed guesses from the second.
//  2. If only the allowed path is set, that file is used for both.
//  3. If neither is set, the embedded lists from the assets package are used.
//  4. If only the answers path is set, Load fails rather than ignore it.
//
// Constraints:
//   • Words must be 5 alphabetic letters (A–Z).
//   • Lists are normalized to uppercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/session-server/assets"
	"github.com/robalobadob/wordle/apps/session-server/internal/game"
)

// ErrNoAnswers is returned when loading yields an empty answers list.
var ErrNoAnswers = errors.New("words: answers list is empty")

// List is an in-memory dictionary. It is read-only after Load and safe for
// concurrent use.
type List struct {
	answers    []string            // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

var _ game.WordSource = (*List)(nil)

// Load builds a List from the given files, or from the embedded defaults when
// both paths are empty.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "":
		return nil, errors.New("words: answers file set without allowed file")

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
		ansList = normalize(ansList)
		allowList = normalize(allowList)
	}

	return NewList(ansList, allowList)
}

// NewList builds a List from already-read words. Answers are always allowed.
func NewList(answers, allowed []string) (*List, error) {
	answers = normalize(answers)
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	l := &List{
		answers:    answers,
		answersSet: toSet(answers),
		allowedSet: toSet(answers),
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file and keeps valid words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return normalize(out), nil
}

// normalize trims and uppercases each entry, dropping anything that is not a
// five-letter alphabetic word.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.ToUpper(strings.TrimSpace(line))
		if len(w) == game.WordLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// GetWord returns a cryptographically random answer.
func (l *List) GetWord() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsWord reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsWord(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToUpper(w)]
	return ok
}

// Answers returns the answer list in load order.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Allowed returns every allowed word, answers included, in no particular order.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowedSet))
	for w := range l.allowedSet {
		out = append(out, w)
	}
	return out
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

// stubSource always returns the same secret and answers IsWord with valid.
type stubSource struct {
	word  string
	valid bool
	calls int
}

func (s *stubSource) GetWord() string { return s.word }

func (s *stubSource) IsWord(string) bool {
	s.calls++
	return s.valid
}

func newStub() *stubSource { return &stubSource{word: "APPLE", valid: true} }

func TestNewDefaults(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub())
	is.NoErr(err)
	is.Equal(s.MaxGuesses(), 6)
	is.Equal(len(s.Guesses()), 6)
	is.Equal(s.CurrentGuess(), 0)
	is.Equal(s.Word(), "APPLE")
	is.True(s.ID() != "")
	for _, g := range s.Guesses() {
		is.True(g.IsEmpty())
	}
}

func TestNewWithMaxGuesses(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub(), WithMaxGuesses(10))
	is.NoErr(err)
	is.Equal(s.MaxGuesses(), 10)
	is.Equal(len(s.Guesses()), 10)
}

func TestNewUppercasesSecret(t *testing.T) {
	is := is.New(t)
	s, err := New(&stubSource{word: "crane", valid: true})
	is.NoErr(err)
	is.Equal(s.Word(), "CRANE")
}

func TestNewRejectsBadConfig(t *testing.T) {
	is := is.New(t)

	_, err := New(newStub(), WithMaxGuesses(0))
	is.True(errors.Is(err, ErrInvalidMaxGuesses))

	_, err = New(&stubSource{word: "APPLES"})
	is.True(errors.Is(err, ErrInvalidSecret))

	_, err = New(&stubSource{word: "AB1DE"})
	is.True(errors.Is(err, ErrInvalidSecret))
}

func TestEvaluateGuessFirstLetter(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub())
	is.NoErr(err)

	for _, tc := range []struct {
		word   string
		status Status
	}{
		{"A____", StatusCorrect},
		{"E____", StatusPresent},
		{"Z____", StatusAbsent},
		{"a____", StatusCorrect},
	} {
		g := s.EvaluateGuess(tc.word)
		is.Equal(g[0].Status, tc.status)
	}
	is.Equal(s.CurrentGuess(), 0)
}

func TestEvaluateGuessFullRow(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub())
	is.NoErr(err)

	g := s.EvaluateGuess("PAPER")
	is.Equal(g.Word(), "PAPER")
	is.Equal(g[0].Status, StatusPresent)
	is.Equal(g[1].Status, StatusPresent)
	is.Equal(g[2].Status, StatusCorrect)
	is.Equal(g[3].Status, StatusPresent)
	is.Equal(g[4].Status, StatusAbsent)
}

func TestEvaluateGuessRepeatedLetters(t *testing.T) {
	is := is.New(t)

	// Secret CRANE holds a single E; the simplified rule marks both guessed Es.
	simple, err := New(&stubSource{word: "CRANE", valid: true})
	is.NoErr(err)
	g := simple.EvaluateGuess("EERIE")
	is.Equal(g[0].Status, StatusPresent)
	is.Equal(g[1].Status, StatusPresent)
	is.Equal(g[4].Status, StatusCorrect)

	twoPass, err := New(&stubSource{word: "CRANE", valid: true}, WithDuplicateAwareScoring())
	is.NoErr(err)
	g = twoPass.EvaluateGuess("EERIE")
	is.Equal(g[0].Status, StatusAbsent)
	is.Equal(g[1].Status, StatusAbsent)
	is.Equal(g[2].Status, StatusPresent)
	is.Equal(g[3].Status, StatusAbsent)
	is.Equal(g[4].Status, StatusCorrect)
}

func TestSubmitGuessIncrements(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub())
	is.NoErr(err)
	for i := 1; i <= 6; i++ {
		is.NoErr(s.SubmitGuess("GUESS"))
		is.Equal(s.CurrentGuess(), i)
		is.Equal(s.Guesses()[i-1].Word(), "GUESS")
	}
}

func TestSubmitGuessOutOfGuesses(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub(), WithMaxGuesses(1))
	is.NoErr(err)
	is.NoErr(s.SubmitGuess("HELLO"))

	err = s.SubmitGuess("HELLO")
	is.True(errors.Is(err, ErrOutOfGuesses))
	is.Equal(s.CurrentGuess(), 1)
}

func TestSubmitGuessInvalidLength(t *testing.T) {
	is := is.New(t)
	for _, max := range []int{1, 6, 10} {
		s, err := New(newStub(), WithMaxGuesses(max))
		is.NoErr(err)
		for _, w := range []string{"", "FOUR", "THREES"} {
			err := s.SubmitGuess(w)
			is.True(errors.Is(err, ErrInvalidLength))
		}
		is.Equal(s.CurrentGuess(), 0)
	}
}

func TestSubmitGuessUnknownWord(t *testing.T) {
	is := is.New(t)
	src := newStub()
	s, err := New(src)
	is.NoErr(err)

	src.valid = false
	err = s.SubmitGuess("GUESS")
	is.True(errors.Is(err, ErrUnknownWord))
	is.Equal(s.CurrentGuess(), 0)
	is.True(s.Guesses()[0].IsEmpty())
}

func TestSubmitGuessChecksLengthBeforeDictionary(t *testing.T) {
	is := is.New(t)
	src := newStub()
	s, err := New(src)
	is.NoErr(err)

	is.True(errors.Is(s.SubmitGuess("THREES"), ErrInvalidLength))
	is.Equal(src.calls, 0)
}

func TestIsSolved(t *testing.T) {
	is := is.New(t)

	s, err := New(newStub())
	is.NoErr(err)
	is.True(!s.IsSolved())

	is.NoErr(s.SubmitGuess("APPLE"))
	is.True(s.IsSolved())

	other, err := New(newStub())
	is.NoErr(err)
	is.NoErr(other.SubmitGuess("SMILE"))
	is.True(!other.IsSolved())
}

func TestShouldEndGame(t *testing.T) {
	is := is.New(t)

	fresh, err := New(newStub())
	is.NoErr(err)
	is.True(!fresh.ShouldEndGame())

	solved, err := New(newStub())
	is.NoErr(err)
	is.NoErr(solved.SubmitGuess("APPLE"))
	is.True(solved.ShouldEndGame())

	exhausted, err := New(newStub(), WithMaxGuesses(1))
	is.NoErr(err)
	is.NoErr(exhausted.SubmitGuess("SMILE"))
	is.True(exhausted.ShouldEndGame())
	is.Equal(exhausted.State(), "lost")

	open, err := New(newStub())
	is.NoErr(err)
	is.NoErr(open.SubmitGuess("GUESS"))
	is.True(!open.ShouldEndGame())
	is.Equal(open.State(), "playing")
}

func TestSolvedSessionPolicy(t *testing.T) {
	is := is.New(t)

	permissive, err := New(newStub())
	is.NoErr(err)
	is.NoErr(permissive.SubmitGuess("APPLE"))
	is.NoErr(permissive.SubmitGuess("GUESS"))
	is.Equal(permissive.CurrentGuess(), 2)
	is.True(!permissive.IsSolved())

	strict, err := New(newStub(), WithRejectAfterSolved())
	is.NoErr(err)
	is.NoErr(strict.SubmitGuess("APPLE"))
	is.True(errors.Is(strict.SubmitGuess("GUESS"), ErrGameSolved))
	is.Equal(strict.CurrentGuess(), 1)
	is.True(strict.IsSolved())
}

func TestEndToEnd(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub(), WithMaxGuesses(6))
	is.NoErr(err)

	is.NoErr(s.SubmitGuess("GUESS"))
	is.Equal(s.CurrentGuess(), 1)
	is.True(!s.IsSolved())
	is.True(!s.ShouldEndGame())

	is.NoErr(s.SubmitGuess("APPLE"))
	is.Equal(s.CurrentGuess(), 2)
	is.True(s.IsSolved())
	is.True(s.ShouldEndGame())
	is.Equal(s.State(), "won")
	is.Equal(s.Remaining(), 4)
}

func TestSubmitGuessCountsCharacters(t *testing.T) {
	is := is.New(t)
	s, err := New(newStub())
	is.NoErr(err)

	// Dotless i is two bytes but a single character.
	is.True(errors.Is(s.SubmitGuess("ıABC"), ErrInvalidLength))
	is.True(errors.Is(s.SubmitGuess("ÉCLATS"), ErrInvalidLength))
	is.Equal(s.CurrentGuess(), 0)

	is.NoErr(s.SubmitGuess("éclat"))
	g := s.Guesses()[0]
	is.Equal(g.Word(), "ÉCLAT")
	is.Equal(g[0].Status, StatusAbsent)
	is.Equal(g[2].Status, StatusPresent)
	is.Equal(g[3].Status, StatusPresent)
	is.Equal(g[4].Status, StatusAbsent)
}

func TestEvaluateGuessWrongLengthIsEmpty(t *testing.T) {
	is := is.New(t)
	for _, opts := range [][]Option{nil, {WithDuplicateAwareScoring()}} {
		s, err := New(newStub(), opts...)
		is.NoErr(err)
		is.True(s.EvaluateGuess("ıABC").IsEmpty())
		is.True(s.EvaluateGuess("APPLES").IsEmpty())

		g := s.EvaluateGuess("ÉPPLE")
		is.Equal(g[0].Status, StatusAbsent)
		is.Equal(g[4].Status, StatusCorrect)
	}
}

// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle session engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, POST /daily/new, POST /game/guess, GET /game/{id}.
//   - Game tokens: each new session comes with a JWT that is required to act on it.
//
// Notes:
//   - Sessions live in the in-memory store only; nothing is persisted.
//   - The answer is never returned while a game is still being played.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/session-server/internal/config"
	"github.com/robalobadob/wordle/apps/session-server/internal/daily"
	"github.com/robalobadob/wordle/apps/session-server/internal/game"
	"github.com/robalobadob/wordle/apps/session-server/internal/store"
	"github.com/robalobadob/wordle/apps/session-server/internal/words"
)

// Dictionary is the word source the server hands to new sessions.
type Dictionary interface {
	game.WordSource
	Answers() []string
	Stats() (answers int, allowed int)
}

// Server bundles router, session store and word sources.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	words Dictionary
	src   game.WordSource // source for random games; defaults to words
	daily daily.Source
}

// New constructs a Server, installs middleware, and registers routes.
// If src is nil, random games draw from dict.
func New(cfg config.Config, st store.Store, dict Dictionary, src game.WordSource) *Server {
	if src == nil {
		src = dict
	}
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		words: dict,
		src:   src,
		daily: daily.Source{Words: dict, Salt: cfg.DailySalt},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access line
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-session","endpoints":["/health","POST /game/new","POST /daily/new","POST /game/guess","GET /game/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/daily/new", s.handleNewDaily)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleGetGame)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, sweeping idle sessions meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// sweep drops sessions idle for longer than cfg.SessionMaxAge.
func (s *Server) sweep(ctx context.Context) {
	if s.cfg.SessionMaxAge <= 0 {
		return
	}
	tick := time.NewTicker(s.cfg.SessionMaxAge / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			n, err := s.store.Sweep(ctx, s.cfg.SessionMaxAge)
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("swept idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for cfg.ClientOrigin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new and /daily/new.
type newGameReq struct {
	MaxGuesses int    `json:"maxGuesses"` // optional, defaults to cfg.MaxGuesses
	Answer     string `json:"answer"`     // optional fixed answer, honoured with AllowFixedAnswer
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	ExpiresAt  string `json:"expiresAt"`
	MaxGuesses int    `json:"maxGuesses"`
	Date       string `json:"date,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}
	src := s.src
	if req.Answer != "" {
		if !s.cfg.AllowFixedAnswer {
			writeError(w, http.StatusForbidden, "fixed_answer_disabled")
			return
		}
		if !s.words.IsWord(req.Answer) {
			writeError(w, http.StatusBadRequest, "answer_not_in_word_list")
			return
		}
		src = words.Fixed{Secret: req.Answer, Valid: s.words}
	}
	s.startSession(w, r, src, req.MaxGuesses, "")
}

func (s *Server) handleNewDaily(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeOptional(w, r, &req) {
		return
	}
	now := time.Now()
	s.startSession(w, r, s.daily.On(now), req.MaxGuesses, daily.DateKey(now))
}

// defaultMaxGuessesLimit caps client-chosen row budgets when the config sets none.
const defaultMaxGuessesLimit = 20

// startSession creates a session from src, stores it and returns its token.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, src game.WordSource, maxGuesses int, date string) {
	if maxGuesses == 0 {
		maxGuesses = s.cfg.MaxGuesses
	}
	limit := s.cfg.MaxGuessesLimit
	if limit <= 0 {
		limit = defaultMaxGuessesLimit
	}
	if maxGuesses > limit {
		writeError(w, http.StatusBadRequest, "invalid_max_guesses")
		return
	}
	opts := []game.Option{game.WithMaxGuesses(maxGuesses)}
	if s.cfg.RejectAfterSolved {
		opts = append(opts, game.WithRejectAfterSolved())
	}
	if s.cfg.StandardScoring {
		opts = append(opts, game.WithDuplicateAwareScoring())
	}

	sess, err := game.New(src, opts...)
	if errors.Is(err, game.ErrInvalidMaxGuesses) {
		writeError(w, http.StatusBadRequest, "invalid_max_guesses")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(sess.ID())
	if err != nil {
		log.Error().Err(err).Str("gameId", sess.ID()).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	log.Info().Str("gameId", sess.ID()).Int("maxGuesses", sess.MaxGuesses()).Str("date", date).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     sess.ID(),
		Token:      tok,
		ExpiresAt:  exp.UTC().Format(time.RFC3339),
		MaxGuesses: sess.MaxGuesses(),
		Date:       date,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Letters      []game.Letter `json:"letters"`
	State        string        `json:"state"` // "playing" | "won" | "lost"
	CurrentGuess int           `json:"currentGuess"`
	Remaining    int           `json:"remaining"`
	Answer       string        `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.authorizeGame(r, req.GameID); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(sess *game.Session) error {
		if err := sess.SubmitGuess(req.Guess); err != nil {
			return err
		}
		row := sess.Guesses()[sess.CurrentGuess()-1]
		res = guessRes{
			Letters:      row[:],
			State:        sess.State(),
			CurrentGuess: sess.CurrentGuess(),
			Remaining:    sess.Remaining(),
		}
		if sess.ShouldEndGame() {
			res.Answer = sess.Word()
		}
		return nil
	})
	if err != nil {
		status, code := errorStatus(err)
		log.Debug().Err(err).Str("gameId", req.GameID).Msg("guess rejected")
		writeError(w, status, code)
		return
	}
	if res.State != "playing" {
		log.Info().Str("gameId", req.GameID).Str("state", res.State).Int("guesses", res.CurrentGuess).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

// boardRes is returned by GET /game/{id}.
type boardRes struct {
	GameID       string          `json:"gameId"`
	MaxGuesses   int             `json:"maxGuesses"`
	CurrentGuess int             `json:"currentGuess"`
	State        string          `json:"state"`
	Guesses      [][]game.Letter `json:"guesses"`
	Answer       string          `json:"answer,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.authorizeGame(r, id); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	var res boardRes
	err := s.store.Get(r.Context(), id, func(sess *game.Session) error {
		res = boardRes{
			GameID:       sess.ID(),
			MaxGuesses:   sess.MaxGuesses(),
			CurrentGuess: sess.CurrentGuess(),
			State:        sess.State(),
		}
		for _, g := range sess.Guesses() {
			res.Guesses = append(res.Guesses, append([]game.Letter(nil), g[:]...))
		}
		if sess.ShouldEndGame() {
			res.Answer = sess.Word()
		}
		return nil
	})
	if err != nil {
		status, code := errorStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// errorStatus maps store and session errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrOutOfGuesses):
		return http.StatusConflict, "out_of_guesses"
	case errors.Is(err, game.ErrGameSolved):
		return http.StatusConflict, "game_solved"
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrUnknownWord):
		return http.StatusUnprocessableEntity, "not_a_word"
	default:
		log.Error().Err(err).Msg("unexpected game error")
		return http.StatusInternalServerError, "internal"
	}
}

// ------------------------------- small util --------------------------------

// decodeOptional decodes a JSON body if there is one. An empty body is fine.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

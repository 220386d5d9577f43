// Package config reads server settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string

	JWTSecret string
	TokenTTL  time.Duration

	MaxGuesses        int
	MaxGuessesLimit   int
	RejectAfterSolved bool
	StandardScoring   bool
	AllowFixedAnswer  bool

	AnswersFile string
	AllowedFile string
	WordsDB     string
	DailySalt   string

	SessionMaxAge time.Duration
}

// Load reads .env (if any) and the process environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),

		JWTSecret: getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:  time.Duration(getInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		MaxGuesses:        getInt("MAX_GUESSES", 6),
		MaxGuessesLimit:   getInt("MAX_GUESSES_LIMIT", 20),
		RejectAfterSolved: getBool("REJECT_AFTER_SOLVED", false),
		StandardScoring:   getBool("STANDARD_SCORING", false),
		AllowFixedAnswer:  getBool("ALLOW_FIXED_ANSWER", false),

		AnswersFile: os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile: os.Getenv("WORDS_ALLOWED_FILE"),
		WordsDB:     os.Getenv("WORDS_DB"),
		DailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),

		SessionMaxAge: time.Duration(getInt("SESSION_MAX_AGE_MINUTES", 120)) * time.Minute,
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the settings of the reference phonebook server.
type Server struct {
	Port              int
	DatabaseURL       string
	ReadHeaderTimeout time.Duration
	LogLevel          string
}

// LoadServer reads server settings from .env and the environment.
func LoadServer() Server {
	_ = godotenv.Load()

	s := Server{
		Port:              3001,
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ReadHeaderTimeout: 15 * time.Second,
		LogLevel:          "info",
	}
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		s.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		s.LogLevel = v
	}
	return s
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultMaxSeatsPerBooking = 5

type Env struct {
	AppAddr            string
	GinMode            string
	DBUser             string
	DBPass             string
	DBHost             string
	DBName             string
	MaxSeatsPerBooking int
}

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr:            getenv("APP_ADDR", ":8080"),
		GinMode:            getenv("GIN_MODE", ""),
		DBUser:             getenv("DB_USER", "root"),
		DBPass:             getenv("DB_PASS", ""),
		DBHost:             getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:             getenv("DB_NAME", "busreserve"),
		MaxSeatsPerBooking: defaultMaxSeatsPerBooking,
	}

	if raw := getenv("MAX_SEATS_PER_BOOKING", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			env.MaxSeatsPerBooking = n
		}
	}

	return env
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource      string
	Port          string
	JWTSecret     string
	JWTTTL        time.Duration
	SessionSecret string
	DraftTTL      time.Duration // lifetime of a ride draft held in the session

	VerifyEmailCooldown time.Duration
	StatsInterval       time.Duration

	GeoBaseURL string
	GeoTimeout time.Duration

	LogLevel string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables from system")
	}

	return &Config{
		DBSource:            getEnv("DB_SOURCE", "insaroule.db"),
		Port:                getEnv("PORT", "8000"),
		JWTSecret:           getEnv("JWT_SECRET", "changeme"),
		JWTTTL:              getDurationEnv("JWT_TTL", 24*time.Hour),
		SessionSecret:       getEnv("SESSION_SECRET", "changeme-too"),
		DraftTTL:            getDurationEnv("RIDE_DRAFT_TTL", 2*time.Hour),
		VerifyEmailCooldown: getDurationEnv("VERIFY_EMAIL_COOLDOWN", 5*time.Minute),
		StatsInterval:       getDurationEnv("STATS_INTERVAL", 24*time.Hour),
		GeoBaseURL:          getEnv("GEO_BASE_URL", "https://data.geopf.fr"),
		GeoTimeout:          getDurationEnv("GEO_TIMEOUT", 5*time.Second),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// MustGetEnv is for values with no sane default (e.g. seeding).
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}

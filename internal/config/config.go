package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/a-sokolov-dev/TrainerDeskBack/pkg/timeutil"
	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBUrl            string
	AppEnv           string
	ScheduleDayStart int
	ScheduleDayEnd   int
	SlotMinutes      int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dayStart, err := timeutil.ClockMinutes(getEnv("SCHEDULE_DAY_START", "08:00"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_DAY_START: %w", err)
	}
	dayEnd, err := timeutil.ClockMinutes(getEnv("SCHEDULE_DAY_END", "22:00"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_DAY_END: %w", err)
	}
	if dayEnd <= dayStart {
		return nil, fmt.Errorf("SCHEDULE_DAY_END must be after SCHEDULE_DAY_START")
	}

	slotMinutes := getEnvInt("SLOT_MINUTES", 30)
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("SLOT_MINUTES must be greater than 0")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DBUrl:            getEnv("DB_URL", ""),
		AppEnv:           normalizeEnv(getEnv("APP_ENV", "production")),
		ScheduleDayStart: dayStart,
		ScheduleDayEnd:   dayEnd,
		SlotMinutes:      slotMinutes,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

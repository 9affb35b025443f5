package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Nikk8744/F-T-T-sub000/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting, read from the environment and an optional .env file
type Config struct {
	Env  string
	Port string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	JWTSecret   string
	CORSOrigins []string

	Timezone string
	Location *time.Location

	DeadlineCron        string
	DeadlineWarningDays int

	LogLevel string
	LogDir   string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

// Load reads configuration with defaults and validates it
func Load() (Config, error) {
	LoadEnv()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8083")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("DEADLINE_CRON", constants.DefaultDeadlineCron)
	v.SetDefault("DEADLINE_WARNING_DAYS", constants.DefaultDeadlineWarningDays)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")
	return v
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:                 v.GetString("ENV"),
		Port:                v.GetString("PORT"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:               v.GetString("DB_DSN"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisUser:           v.GetString("REDIS_USER"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		CORSOrigins:         splitList(v.GetString("CORS_ORIGINS")),
		Timezone:            v.GetString("TIMEZONE"),
		DeadlineCron:        strings.TrimSpace(v.GetString("DEADLINE_CRON")),
		DeadlineWarningDays: v.GetInt("DEADLINE_WARNING_DAYS"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogDir:              v.GetString("LOG_DIR"),
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBDSN == "" {
			cfg.DBDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
				v.GetString("DB_HOST"), v.GetString("DB_USER"), v.GetString("DB_PASSWORD"),
				v.GetString("DB_NAME"), v.GetString("DB_PORT"), v.GetString("DB_SSLMODE"), cfg.Timezone)
		}
	case "sqlite":
		if cfg.DBDSN == "" {
			cfg.DBDSN = "data/tasks.db"
		}
	default:
		return cfg, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.DeadlineWarningDays < 0 {
		return cfg, fmt.Errorf("DEADLINE_WARNING_DAYS must not be negative, got %d", cfg.DeadlineWarningDays)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

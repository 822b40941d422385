package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const maxMeetupLimit = 5

type Config struct {
	ServiceName   string
	ServerAddress string

	DatabaseURL string
	DBName      string
	DBPassword  string
	DBUser      string
	DBPort      string
	DBHost      string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	GeocodeAPIKey string
	WeatherAPIKey string
	MeetupAPIKey  string
	YelpAPIKey    string

	GeocodeBaseURL string
	WeatherBaseURL string
	MeetupBaseURL  string
	YelpBaseURL    string

	ProviderTimeout time.Duration
	MeetupLimit     int

	CacheTTL          time.Duration
	LocationMemoryTTL time.Duration
	SweepInterval     time.Duration
	RecordRetention   time.Duration

	CORSAllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "city-explorer")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 30)

	v.SetDefault("GEOCODE_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("WEATHER_BASE_URL", "https://api.darksky.net/forecast")
	v.SetDefault("MEETUP_BASE_URL", "https://api.meetup.com/find/upcoming_events")
	v.SetDefault("YELP_BASE_URL", "https://api.yelp.com/v3/businesses/search")

	v.SetDefault("PROVIDER_TIMEOUT", 10*time.Second)
	v.SetDefault("MEETUP_LIMIT", maxMeetupLimit)

	v.SetDefault("CACHE_TTL", time.Minute)
	v.SetDefault("LOCATION_MEMORY_TTL", 10*time.Minute)
	v.SetDefault("SWEEP_INTERVAL", time.Hour)
	v.SetDefault("RECORD_RETENTION", 24*time.Hour)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:        v.GetString("SERVICE_NAME"),
		ServerAddress:      v.GetString("SERVER_ADDRESS"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBName:             v.GetString("DATABASE_NAME"),
		DBPassword:         v.GetString("DATABASE_PASSWORD"),
		DBUser:             v.GetString("DATABASE_USER"),
		DBPort:             v.GetString("DATABASE_PORT"),
		DBHost:             v.GetString("DATABASE_HOST"),
		Env:                v.GetString("ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		HTTPTimeout:        v.GetInt32("HTTP_TIMEOUT"),
		GeocodeAPIKey:      v.GetString("GEOCODE_API_KEY"),
		WeatherAPIKey:      v.GetString("WEATHER_API_KEY"),
		MeetupAPIKey:       v.GetString("MEETUP_API_KEY"),
		YelpAPIKey:         v.GetString("YELP_API_KEY"),
		GeocodeBaseURL:     v.GetString("GEOCODE_BASE_URL"),
		WeatherBaseURL:     v.GetString("WEATHER_BASE_URL"),
		MeetupBaseURL:      v.GetString("MEETUP_BASE_URL"),
		YelpBaseURL:        v.GetString("YELP_BASE_URL"),
		ProviderTimeout:    v.GetDuration("PROVIDER_TIMEOUT"),
		MeetupLimit:        clampMeetupLimit(v.GetInt("MEETUP_LIMIT")),
		CacheTTL:           v.GetDuration("CACHE_TTL"),
		LocationMemoryTTL:  v.GetDuration("LOCATION_MEMORY_TTL"),
		SweepInterval:      v.GetDuration("SWEEP_INTERVAL"),
		RecordRetention:    v.GetDuration("RECORD_RETENTION"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	// PORT is what most hosting platforms hand us
	if port := v.GetString("PORT"); port != "" {
		config.ServerAddress = ":" + port
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// DSN prefers DATABASE_URL and falls back to the discrete DATABASE_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func clampMeetupLimit(limit int) int {
	if limit <= 0 || limit > maxMeetupLimit {
		return maxMeetupLimit
	}
	return limit
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

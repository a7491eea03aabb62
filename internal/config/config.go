// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Cache    CacheConfig
	Reminder ReminderConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StoreConfig identifies the store on outgoing supplier order sheets.
type StoreConfig struct {
	Name          string
	Phone         string
	ContactPerson string
	Timezone      string
	// ExtraHolidays are month-day values ("01-07") observed in addition
	// to the public holiday calendar.
	ExtraHolidays []string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ForecastTTLSeconds int
}

type ReminderConfig struct {
	Enabled         bool
	LeadMinutes     int
	IntervalSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "procurement")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("STORE_NAME", "Ferma Eda")
		viper.SetDefault("STORE_PHONE", "+7 904 765-33-95")
		viper.SetDefault("STORE_CONTACT_PERSON", "Store staff")
		viper.SetDefault("STORE_TIMEZONE", "Europe/Moscow")
		viper.SetDefault("STORE_EXTRA_HOLIDAYS", []string{"09-01", "12-29", "12-30", "12-31"})
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_FORECAST_TTL_SECONDS", 300)
		viper.SetDefault("REMINDER_ENABLED", true)
		viper.SetDefault("REMINDER_LEAD_MINUTES", 10)
		viper.SetDefault("REMINDER_INTERVAL_SECONDS", 60)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Store: StoreConfig{
				Name:          viper.GetString("STORE_NAME"),
				Phone:         viper.GetString("STORE_PHONE"),
				ContactPerson: viper.GetString("STORE_CONTACT_PERSON"),
				Timezone:      viper.GetString("STORE_TIMEZONE"),
				ExtraHolidays: viper.GetStringSlice("STORE_EXTRA_HOLIDAYS"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				ForecastTTLSeconds: viper.GetInt("CACHE_FORECAST_TTL_SECONDS"),
			},
			Reminder: ReminderConfig{
				Enabled:         viper.GetBool("REMINDER_ENABLED"),
				LeadMinutes:     viper.GetInt("REMINDER_LEAD_MINUTES"),
				IntervalSeconds: viper.GetInt("REMINDER_INTERVAL_SECONDS"),
			},
		}
	})

	return instance
}

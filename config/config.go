package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries everything read from the environment. A .env file, when
// present, is loaded by main before processing.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Storage. STORE_DRIVER selects the key/value backend: "db" keeps
	// collections in a relational kv table (sqlite unless DB_URL points at
	// postgres), "redis" keeps them as flat redis string keys.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"db"`
	DBURL       string `envconfig:"DB_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"labrise.db"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Queue policy: whether completed items may be removed from the queue.
	AllowRemoveCompleted bool `envconfig:"QUEUE_ALLOW_REMOVE_COMPLETED" default:"false"`

	// Re-wash reminders. Disabled unless Twilio credentials are set.
	ReminderCron      string `envconfig:"REMINDER_CRON" default:"0 9 * * *"`
	ReminderAfterDays int    `envconfig:"REMINDER_AFTER_DAYS" default:"30"`
	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `envconfig:"TWILIO_PHONE_NUMBER"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// Load processes the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RemindersEnabled reports whether the Twilio credentials needed for the
// reminder scheduler are present.
func (c Config) RemindersEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

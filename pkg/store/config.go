package store

import (
	"log"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the locally configured settings for the journal.
type Config struct {
	// Path is the base path of the local key-value store.
	Path string `mapstructure:"path"`

	Remote   RemoteConfig   `mapstructure:"remote"`
	Assist   AssistConfig   `mapstructure:"assist"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// RemoteConfig identifies the cloud document store mirror.
type RemoteConfig struct {
	Project string `mapstructure:"project"`
	User    string `mapstructure:"user"`
}

// AssistConfig configures the text-completion collaborator.
type AssistConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ReminderConfig configures the daily pending-task notification.
type ReminderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	At      string `mapstructure:"at"` // "17:00"
}

// LoadConfig reads the .momentum config file and environment overrides.
func LoadConfig() (*Config, error) {
	viper.SetDefault("path", "~/.momentum.db")
	viper.SetDefault("assist.model", "gemini-1.5-flash")
	viper.SetDefault("reminder.enabled", false)
	viper.SetDefault("reminder.at", "17:00")
	viper.SetConfigName(".momentum") // .yaml is implicit
	viper.SetEnvPrefix("MOMENTUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if expanded, err := homedir.Expand(cfg.Path); err == nil {
		cfg.Path = expanded
	}
	return cfg, nil
}

// Package config provides configuration loading, validation, and defaults
// for the bot. Values come from defaults, an optional YAML file, and
// BOT_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds transport credentials and runtime bot identity.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is filled from GetMe at startup, not from configuration.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds scheduled task settings keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a registered task and gives it a cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds every user-facing message template. Templates use
// {name} placeholders rendered by the handlers' template renderer.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"`
	Help          string `mapstructure:"help"`
	About         string `mapstructure:"about"`
	TextOnly      string `mapstructure:"text_only"`
	ForwardedOnly string `mapstructure:"forwarded_only"`
	UsersOnly     string `mapstructure:"users_only"`
	NoBots        string `mapstructure:"no_bots"`
	Noted         string `mapstructure:"noted"`
	Duplicate     string `mapstructure:"duplicate"`
	Notice        string `mapstructure:"notice"`
	Muted         string `mapstructure:"muted"`
	Unmuted       string `mapstructure:"unmuted"`
	Deleted       string `mapstructure:"deleted"`
	UnknownUser   string `mapstructure:"unknown_user"`
	NoRecords     string `mapstructure:"no_records"`
	ListUsage     string `mapstructure:"list_usage"`
	DeleteUsage   string `mapstructure:"delete_usage"`
	GeneralError  string `mapstructure:"general_error"`
}

// Load reads configuration from configPath (or ./config.yaml when empty),
// applies defaults, merges BOT_* environment variables, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from
		// defaults and environment variables.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "saidbot.db")

	v.SetDefault("scheduler.tasks.store_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.store_maintenance.schedule", "0 0 4 * * *")

	v.SetDefault("messages.welcome", "Welcome\\! Forward me a message and I will record it against its author")
	v.SetDefault("messages.help", strings.Join([]string{
		"Forward a message to record it against its author",
		"/list: show your recorded messages",
		"/list @handle: show someone else's recorded messages",
		"/del id: delete one of your own records",
		"/mute and /unmute: toggle forward notifications",
		"/about: about this bot",
	}, "\n"))
	v.SetDefault("messages.about", "A quote log bot: forward messages to record who said what")
	v.SetDefault("messages.text_only", "Only text messages are supported")
	v.SetDefault("messages.forwarded_only", "Only forwarded messages are supported")
	v.SetDefault("messages.users_only", "Only messages forwarded from users are supported")
	v.SetDefault("messages.no_bots", "Messages from bots are not supported")
	v.SetDefault("messages.noted", "✅ `{text}` noted")
	v.SetDefault("messages.duplicate", "`{text}` is already recorded")
	v.SetDefault("messages.notice", strings.Join([]string{
		"[{username}](tg://user?id={user_id}) forwarded your `{text}`",
		"Use /list to see messages recorded about you",
		"Use /del to delete one of your own records",
		"Use /mute or /unmute to control these notifications",
	}, "\n"))
	v.SetDefault("messages.muted", "Notifications are now off")
	v.SetDefault("messages.unmuted", "Notifications are now on")
	v.SetDefault("messages.deleted", "Deleted")
	v.SetDefault("messages.unknown_user", "No such user")
	v.SetDefault("messages.no_records", "Nothing recorded yet")
	v.SetDefault("messages.list_usage", "Usage: /list @handle")
	v.SetDefault("messages.delete_usage", "Usage: /del id, where id is a number from /list")
	v.SetDefault("messages.general_error", "Something went wrong, please try again later")
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	GuildID string `mapstructure:"guild_id"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type QueueConfig struct {
	// Channel the queue embed is published to on first refresh.
	ChannelID string `mapstructure:"channel_id"`
	// Text DMed to a user when they are removed from the queue.
	RemovalMessage string `mapstructure:"removal_message"`
}

type ReviewsConfig struct {
	TicketCategoryIDs []string `mapstructure:"ticket_category_ids"`
	PublicChannelID   string   `mapstructure:"public_channel_id"`
	// Seconds of inactivity before a review request expires.
	RequestTimeoutSeconds int               `mapstructure:"request_timeout_seconds"`
	CategoryLabels        map[string]string `mapstructure:"category_labels"`
}

type VouchConfig struct {
	Footer string `mapstructure:"footer"`
}

type Config struct {
	Discord  DiscordConfig  `mapstructure:"discord"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Reviews  ReviewsConfig  `mapstructure:"reviews"`
	Vouch    VouchConfig    `mapstructure:"vouch"`
}

// Load reads configs/config.yaml, applying VOIDBOT_* environment overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("VOIDBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("discord token is not configured")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("database.path", "voidbot.db")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("queue.removal_message",
		"**You've been successfully removed from the Void Studios queue. Thank you for your support!**\n"+
			"We'd love to hear about your experience. If you have a moment, please consider leaving a vouch.\n"+
			"Your feedback helps us improve and continue delivering top-notch service.")

	viper.SetDefault("reviews.request_timeout_seconds", 300)

	viper.SetDefault("vouch.footer", "discord.gg/voidstudios")
}

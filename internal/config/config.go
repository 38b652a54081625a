// Package config loads tracker settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the tracker daemon.
type Config struct {
	ParticipantID   string `mapstructure:"DONORDRIVE_PARTICIPANT_ID"`
	TeamID          string `mapstructure:"DONORDRIVE_TEAM_ID"`
	CurrencySymbol  string `mapstructure:"CURRENCY_SYMBOL"`
	DonorsToDisplay int    `mapstructure:"DONORS_TO_DISPLAY"`
	BaseAPIURL      string `mapstructure:"BASE_API_URL"`
	OutputFolder    string `mapstructure:"OUTPUT_FOLDER"`
	PollSchedule    string `mapstructure:"POLL_SCHEDULE"`
	MCPEnabled      bool   `mapstructure:"MCP_ENABLED"`
	MCPListenAddr   string `mapstructure:"MCP_LISTEN_ADDR"`
	MCPPath         string `mapstructure:"MCP_PATH"`
}

// LoadConfig reads configuration from environment variables. A .env file
// in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("CURRENCY_SYMBOL", "$")
	viper.SetDefault("DONORS_TO_DISPLAY", 5)
	viper.SetDefault("BASE_API_URL", "https://www.extra-life.org/api")
	viper.SetDefault("OUTPUT_FOLDER", "output")
	viper.SetDefault("POLL_SCHEDULE", "@every 15s")
	viper.SetDefault("MCP_ENABLED", false)
	viper.SetDefault("MCP_LISTEN_ADDR", ":8080")
	viper.SetDefault("MCP_PATH", "/mcp")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal.
	_ = viper.BindEnv("DONORDRIVE_PARTICIPANT_ID")
	_ = viper.BindEnv("DONORDRIVE_TEAM_ID")
	_ = viper.BindEnv("CURRENCY_SYMBOL")
	_ = viper.BindEnv("DONORS_TO_DISPLAY")
	_ = viper.BindEnv("BASE_API_URL")
	_ = viper.BindEnv("OUTPUT_FOLDER")
	_ = viper.BindEnv("POLL_SCHEDULE")
	_ = viper.BindEnv("MCP_ENABLED")
	_ = viper.BindEnv("MCP_LISTEN_ADDR")
	_ = viper.BindEnv("MCP_PATH")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.ParticipantID == "" {
		return nil, fmt.Errorf("DONORDRIVE_PARTICIPANT_ID is required")
	}
	if config.DonorsToDisplay < 1 {
		return nil, fmt.Errorf("DONORS_TO_DISPLAY must be at least 1, got %d", config.DonorsToDisplay)
	}
	return &config, nil
}

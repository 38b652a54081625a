package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DONORDRIVE_PARTICIPANT_ID", "478153")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "478153", cfg.ParticipantID)
	assert.Equal(t, "", cfg.TeamID)
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, 5, cfg.DonorsToDisplay)
	assert.Equal(t, "https://www.extra-life.org/api", cfg.BaseAPIURL)
	assert.Equal(t, "output", cfg.OutputFolder)
	assert.Equal(t, "@every 15s", cfg.PollSchedule)
	assert.False(t, cfg.MCPEnabled)
	assert.Equal(t, ":8080", cfg.MCPListenAddr)
	assert.Equal(t, "/mcp", cfg.MCPPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DONORDRIVE_PARTICIPANT_ID", "478153")
	t.Setenv("DONORDRIVE_TEAM_ID", "44013")
	t.Setenv("CURRENCY_SYMBOL", "€")
	t.Setenv("DONORS_TO_DISPLAY", "3")
	t.Setenv("BASE_API_URL", "https://donor.test/api")
	t.Setenv("POLL_SCHEDULE", "@every 1m")
	t.Setenv("MCP_ENABLED", "true")
	t.Setenv("MCP_LISTEN_ADDR", ":9090")
	t.Setenv("MCP_PATH", "/tools/mcp")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "44013", cfg.TeamID)
	assert.Equal(t, "€", cfg.CurrencySymbol)
	assert.Equal(t, 3, cfg.DonorsToDisplay)
	assert.Equal(t, "https://donor.test/api", cfg.BaseAPIURL)
	assert.Equal(t, "@every 1m", cfg.PollSchedule)
	assert.True(t, cfg.MCPEnabled)
	assert.Equal(t, ":9090", cfg.MCPListenAddr)
	assert.Equal(t, "/tools/mcp", cfg.MCPPath)
}

func TestLoadConfig_FailsWithoutParticipantID(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DONORDRIVE_PARTICIPANT_ID", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "DONORDRIVE_PARTICIPANT_ID"),
		"error should name the missing variable, got %v", err)
}

func TestLoadConfig_RejectsBadDisplayCount(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DONORDRIVE_PARTICIPANT_ID", "478153")
	t.Setenv("DONORS_TO_DISPLAY", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}

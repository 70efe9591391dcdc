package game

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameConfigDefaults(t *testing.T) {
	config, err := ParseGameConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGameConfig(), config)
	assert.Equal(t, time.Hour, config.StateTTL())
	assert.Equal(t, 10*time.Minute, config.InviteTTL())
}

func TestParseGameConfigOverrides(t *testing.T) {
	dir, err := ioutil.TempDir("", "duel-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "game.yaml")
	content := `
startingChips: 200
minBet: 10
handsPerMatch: 3
`
	require.NoError(t, ioutil.WriteFile(fileName, []byte(content), 0644))

	config, err := ParseGameConfig(fileName)
	require.NoError(t, err)
	assert.Equal(t, int32(200), config.StartingChips)
	assert.Equal(t, int32(10), config.MinBet)
	assert.Equal(t, int32(3), config.HandsPerMatch)
	// Unset fields keep their defaults.
	assert.Equal(t, int32(5), config.BetIncrement)
	assert.Equal(t, int32(3600), config.StateTTLSec)
}

func TestParseGameConfigMissingFile(t *testing.T) {
	_, err := ParseGameConfig("/nonexistent/game.yaml")
	assert.Error(t, err)
}

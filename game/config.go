package game

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// GameConfig carries the tunable match parameters. The active config is
// snapshotted into each GameState so a match keeps its rules even if the
// server is reconfigured mid-match.
type GameConfig struct {
	StartingChips int32 `yaml:"startingChips" json:"startingChips"`
	MinBet        int32 `yaml:"minBet" json:"minBet"`
	BetIncrement  int32 `yaml:"betIncrement" json:"betIncrement"`
	HandsPerMatch int32 `yaml:"handsPerMatch" json:"handsPerMatch"`
	StateTTLSec   int32 `yaml:"stateTTLSec" json:"stateTTLSec"`
	InviteTTLSec  int32 `yaml:"inviteTTLSec" json:"inviteTTLSec"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		StartingChips: 100,
		MinBet:        5,
		BetIncrement:  5,
		HandsPerMatch: 5,
		StateTTLSec:   3600,
		InviteTTLSec:  600,
	}
}

// ParseGameConfig reads a yaml config file. Missing fields keep their
// defaults; an empty file name returns the defaults unchanged.
func ParseGameConfig(fileName string) (GameConfig, error) {
	config := DefaultGameConfig()
	if fileName == "" {
		return config, nil
	}
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return config, errors.Wrapf(err, "Error reading game config file [%s]", fileName)
	}
	err = yaml.Unmarshal(bytes, &config)
	if err != nil {
		return config, errors.Wrapf(err, "Error parsing game config file [%s]", fileName)
	}
	return config, nil
}

func (c GameConfig) StateTTL() time.Duration {
	return time.Duration(c.StateTTLSec) * time.Second
}

func (c GameConfig) InviteTTL() time.Duration {
	return time.Duration(c.InviteTTLSec) * time.Second
}

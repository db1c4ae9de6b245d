package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	engine "github.com/jason-s-yu/onetrick/engine"
)

const validRules = `
players: 4
deck:
  suits: ["♠","♥","♦","♣"]
  ranks: [2,3,4,5,6,7,8,9,10,11,12,13,14]
  wizards: 4
  jesters: 4
rounds:
  min: 1
  max: auto
trump:
  flip_interpretation:
    jester: NONE
    wizard: dealerChooses
bidding:
  scoring:
    exact: "20 + 10*bid"
    miss_penalty_per_trick: -10
play:
  priority: ["WIZARD", "TRUMP", "LED_SUIT", "OTHER"]
  first_wizard_wins_ties: true
  all_jesters_first_jester_wins: true
`

func TestParseRulesValid(t *testing.T) {
	r, err := ParseRules([]byte(validRules))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRules(), r)
	assert.Equal(t, 15, r.RoundLimit())
}

func TestParseRulesFixedMax(t *testing.T) {
	doc := strings.Replace(validRules, "max: auto", "max: 10", 1)
	r, err := ParseRules([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 10, r.RoundLimit())
}

func TestParseRulesWizardModes(t *testing.T) {
	for _, mode := range []engine.WizardFlipMode{engine.FlipDealerChooses, engine.FlipLedSuit, engine.FlipFixedNone} {
		doc := strings.Replace(validRules, "wizard: dealerChooses", "wizard: "+mode.String(), 1)
		r, err := ParseRules([]byte(doc))
		require.NoError(t, err, mode.String())
		assert.Equal(t, mode, r.WizardFlip)
	}
}

func TestParseRulesMalformedYAML(t *testing.T) {
	_, err := ParseRules([]byte("invalid: yaml: content:"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}

func TestParseRulesMissingSections(t *testing.T) {
	_, err := ParseRules([]byte("players: 4\ndeck:\n  suits: [\"♠\",\"♥\",\"♦\",\"♣\"]\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRules))
	assert.Contains(t, err.Error(), "missing required sections")
}

func TestParseRulesRejects(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{"too few players", "players: 4", "players: 2"},
		{"too many players", "players: 4", "players: 7"},
		{"short deck", "wizards: 4", "wizards: 3"},
		{"extra rank", "13,14]", "13,14,15]"},
		{"odd suits", `"♦","♣"]`, `"♦","★"]`},
		{"jester trump", "jester: NONE", "jester: LOWEST"},
		{"unknown wizard mode", "wizard: dealerChooses", "wizard: random"},
		{"zero min rounds", "min: 1", "min: 0"},
		{"max beyond deck", "max: auto", "max: 16"},
		{"min above max", "min: 1\n  max: auto", "min: 9\n  max: 8"},
		{"bad formula", `"20 + 10*bid"`, `"20 * bid"`},
		{"reordered priority", `["WIZARD", "TRUMP"`, `["TRUMP", "WIZARD"`},
		{"ties disabled", "first_wizard_wins_ties: true", "first_wizard_wins_ties: false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(validRules, tt.old, tt.new, 1)
			require.NotEqual(t, validRules, doc, "replacement did not apply")
			_, err := ParseRules([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRules), err.Error())
		})
	}
}

func TestParseRulesBadMaxValue(t *testing.T) {
	doc := strings.Replace(validRules, "max: auto", "max: lots", 1)
	_, err := ParseRules([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rounds.max")
}

func TestParseExactFormula(t *testing.T) {
	tests := []struct {
		in           string
		base, perBid int
		ok           bool
	}{
		{"20 + 10*bid", 20, 10, true},
		{"20+10*bid", 20, 10, true},
		{" 0 + 5 * bid ", 0, 5, true},
		{"30 + -5*bid", 30, -5, true},
		{"10*bid + 20", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		base, perBid, err := ParseExactFormula(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.base, base)
		assert.Equal(t, tt.perBid, perBid)
	}
}

func TestDefaultRulesFileRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(DefaultRulesFile())
	require.NoError(t, err)
	assert.Contains(t, string(out), "max: auto")

	r, err := ParseRules(out)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRules(), r)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameRules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validRules), 0o644))

	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Players)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRepositoryRulesFile(t *testing.T) {
	r, err := LoadRules(filepath.Join("..", "..", "gameRules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRules(), r)
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("ONETRICK_RULES", "rules.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("WATCH_ADDR", ":8080")
	t.Setenv("WATCH_ORIGINS", "localhost:3000, *.example.com ,")

	s := LoadSettings(filepath.Join(t.TempDir(), "absent.env"))
	assert.Equal(t, "rules.yaml", s.RulesPath)
	assert.Equal(t, logrus.DebugLevel, s.LogLevel)
	assert.Equal(t, "redis://localhost:6379/0", s.RedisURL)
	assert.Empty(t, s.DatabaseURL)
	assert.Equal(t, "nats://localhost:4222", s.NATSURL)
	assert.Equal(t, ":8080", s.WatchAddr)
	assert.Equal(t, []string{"localhost:3000", "*.example.com"}, s.WatchOrigins)

	t.Setenv("LOG_LEVEL", "chatty")
	assert.Equal(t, logrus.InfoLevel, LoadSettings(filepath.Join(t.TempDir(), "absent.env")).LogLevel)
}

func TestLoadSettingsEnvFile(t *testing.T) {
	t.Setenv("WATCH_ADDR", "")
	os.Unsetenv("WATCH_ADDR")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WATCH_ADDR=:9090\n"), 0o644))

	assert.Equal(t, ":9090", LoadSettings(path).WatchAddr)
}

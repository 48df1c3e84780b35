// Package config loads the deployment settings a running agent needs:
// board-size hints, search tuning, and the external service addresses
// notify/ranking/cloudlog depend on. Grounded on niceyeti-tabular's
// reinforcement.FromYaml (viper reading a YAML file into a typed
// struct) and pthm-soup's config.Load (embedded defaults merged with an
// optional override file).
package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// SearchConfig tunes the MCTS worker pool. MoveBudget is stored as a
// duration string (e.g. "400ms") rather than time.Duration directly:
// yaml.v3 decodes a bare scalar into Duration's underlying int64 instead
// of parsing it as a duration, so the conversion happens explicitly in
// MoveBudgetDuration.
type SearchConfig struct {
	Workers      int    `yaml:"workers"`
	MoveBudget   string `yaml:"move_budget"`
	RolloutDepth int    `yaml:"rollout_depth"`
}

// MoveBudgetDuration parses MoveBudget, defaulting to 400ms if it is
// empty or malformed.
func (s SearchConfig) MoveBudgetDuration() time.Duration {
	d, err := time.ParseDuration(s.MoveBudget)
	if err != nil {
		return 400 * time.Millisecond
	}
	return d
}

// NotifyConfig names the Google Cloud resources notify pulls
// credentials and destinations from.
type NotifyConfig struct {
	DiscordWebhookSecret string `yaml:"discord_webhook_secret"`
	TidbytSecret         string `yaml:"tidbyt_secret"`
	TidbytDeviceID       string `yaml:"tidbyt_device_id"`
	ReplayBucket         string `yaml:"replay_bucket"`
}

// RankingConfig points at the leaderboard profile to scrape.
type RankingConfig struct {
	ProfileURL string `yaml:"profile_url"`
}

// Config is the full settings tree for a running agent process.
type Config struct {
	Port    string        `yaml:"port"`
	Search  SearchConfig  `yaml:"search"`
	Notify  NotifyConfig  `yaml:"notify"`
	Ranking RankingConfig `yaml:"ranking"`
}

// Load merges the embedded defaults with an optional override file at
// path (ignored if path is ""), using viper to read the override file
// the way FromYaml does, then yaml.v3 to decode it into Config the way
// pthm-soup's Load re-unmarshals onto the already-populated struct so
// only fields present in the override file change.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: parse embedded defaults: %w", err)
	}
	if path == "" {
		return cfg, nil
	}

	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read override file %q: %w", path, err)
	}

	overrideYAML, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("config: remarshal override settings: %w", err)
	}
	if err := yaml.Unmarshal(overrideYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: apply override file %q: %w", path, err)
	}

	return cfg, nil
}

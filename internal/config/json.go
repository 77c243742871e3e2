package config

import (
	"encoding/json"
	"os"

	"github.com/mkaleva/ornata/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-empty values are copied into the runtime Config so that an omitted key
// keeps its default.
type JsonConfig struct {
	APIBaseURL       string `json:"api_base_url"`
	DatabasePath     string `json:"database_path"`
	ChallengeURL     string `json:"challenge_url"`
	ChallengeSiteKey string `json:"challenge_site_key"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies non-empty fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ChallengeURL != "" {
		cfg.ChallengeURL = jc.ChallengeURL
	}
	if jc.ChallengeSiteKey != "" {
		cfg.ChallengeSiteKey = jc.ChallengeSiteKey
	}
}

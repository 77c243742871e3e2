package config

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - APIBaseURL: base URL of the storefront backend API, including the
//     path prefix (e.g. http://localhost:8000/api).
//   - DatabasePath: path to the local SQLite file that persists the session.
//   - ChallengeURL: endpoint that mints bot-challenge tokens. Empty disables
//     challenge tokens entirely.
//   - ChallengeSiteKey: site key sent with each challenge-token request.
type Config struct {
	APIBaseURL       string
	DatabasePath     string
	ChallengeURL     string
	ChallengeSiteKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DatabasePath = "ornata.db"
	c.ChallengeURL = ""
	c.ChallengeSiteKey = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

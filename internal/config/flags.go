package config

import (
	"flag"
	"os"

	"github.com/mkaleva/ornata/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-d string   path to the local database file (default from Config)
//	-r string   bot-challenge token endpoint (empty disables challenges)
//	-k string   bot-challenge site key
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.ChallengeURL, "r", cfg.ChallengeURL, "bot-challenge token endpoint")
	fs.StringVar(&cfg.ChallengeSiteKey, "k", cfg.ChallengeSiteKey, "bot-challenge site key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 all flags", args: []string{"cmd", "-a", "http://api.example/api", "-d", "local.db", "-r", "http://ch.example/token", "-k", "sk1"},
			expected: &Config{APIBaseURL: "http://api.example/api", DatabasePath: "local.db", ChallengeURL: "http://ch.example/token", ChallengeSiteKey: "sk1"}},
		{name: "Test2 partial override keeps other values", args: []string{"cmd", "-d", "other.db"},
			expected: &Config{APIBaseURL: "", DatabasePath: "other.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

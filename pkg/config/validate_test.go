package config

import (
	"testing"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{Settings: Settings{Destination: "out", Workers: 1}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		entry  string
	}{
		{"empty destination", func(c *Config) { c.Settings.Destination = " " }, "settings.destination"},
		{"negative workers", func(c *Config) { c.Settings.Workers = -1 }, "settings.workers"},
		{"negative timeout", func(c *Config) { c.Settings.Timeout = -1 }, "settings.timeout"},
		{"resolver without name", func(c *Config) { c.Resolvers = []ResolverEntry{{Template: "x"}} }, "resolvers[0]"},
		{"resolver without template", func(c *Config) { c.Resolvers = []ResolverEntry{{Name: "x"}} }, "resolvers[0]"},
		{"empty item", func(c *Config) { c.Items = []ItemEntry{{Local: "a"}, {}} }, "items[1]"},
		{"nested bad item", func(c *Config) {
			c.Dirs = []DirEntry{{Path: "a", Dirs: []DirEntry{{Path: "b", Items: []ItemEntry{{Use: "r"}}}}}}
		}, "dirs[0].dirs[0].items[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
			assert.Equal(t, tt.entry, errors.GetErrorDetails(err)["entry"])
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestItemEntryValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry ItemEntry
		ok    bool
	}{
		{"local", ItemEntry{Local: "a.txt"}, true},
		{"local with name", ItemEntry{Local: "a.txt", FileName: "b.txt"}, true},
		{"url list", ItemEntry{URL: []interface{}{"https://e.com/a"}}, true},
		{"github", ItemEntry{GitHub: "o/r:p", FileName: "x"}, true},
		{"use", ItemEntry{Use: "r", ID: "id"}, true},
		{"nothing", ItemEntry{}, false},
		{"two kinds", ItemEntry{Local: "a", URL: "https://e.com/a"}, false},
		{"use without id", ItemEntry{Use: "r"}, false},
		{"id without use", ItemEntry{Local: "a", ID: "x"}, false},
		{"url with name", ItemEntry{URL: "https://e.com/a", FileName: "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
			}
		})
	}
}

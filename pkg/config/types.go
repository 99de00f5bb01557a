package config

import "time"

// Config is the decoded configuration: run settings plus the manifest
// entries that describe the section tree
type Config struct {
	Settings Settings `koanf:"settings" toml:"settings" yaml:"settings"`
	Manifest `koanf:",squash" yaml:",inline"`

	// Path is the manifest file the configuration was read from, if any
	Path string `koanf:"-" toml:"-" yaml:"-"`
	// BaseDir is the directory relative paths are resolved against
	BaseDir string `koanf:"-" toml:"-" yaml:"-"`
}

// Settings control a run
type Settings struct {
	Destination string        `koanf:"destination" toml:"destination" yaml:"destination"`
	Workers     int           `koanf:"workers" toml:"workers,omitempty" yaml:"workers,omitempty"`
	FailFast    bool          `koanf:"fail_fast" toml:"fail_fast,omitempty" yaml:"fail_fast,omitempty"`
	Timeout     time.Duration `koanf:"timeout" toml:"timeout,omitempty" yaml:"timeout,omitempty"`
	DryRun      bool          `koanf:"dry_run" toml:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// Manifest holds the declarative part of the configuration
type Manifest struct {
	Resolvers []ResolverEntry `koanf:"resolvers" toml:"resolvers,omitempty" yaml:"resolvers,omitempty"`
	Items     []ItemEntry     `koanf:"items" toml:"items,omitempty" yaml:"items,omitempty"`
	Dirs      []DirEntry      `koanf:"dirs" toml:"dirs,omitempty" yaml:"dirs,omitempty"`
}

// ResolverEntry declares a template-based custom resolver
type ResolverEntry struct {
	Name     string `koanf:"name" toml:"name" yaml:"name"`
	Local    bool   `koanf:"local" toml:"local" yaml:"local"`
	Template string `koanf:"template" toml:"template" yaml:"template"`
}

// ItemEntry declares one item. Exactly one of Local, URL, GitHub and Use
// is set.
type ItemEntry struct {
	Local  string `koanf:"local" toml:"local,omitempty" yaml:"local,omitempty"`
	URL    any    `koanf:"url" toml:"url,omitempty" yaml:"url,omitempty"`
	GitHub string `koanf:"github" toml:"github,omitempty" yaml:"github,omitempty"`
	Use    string `koanf:"use" toml:"use,omitempty" yaml:"use,omitempty"`

	// ID is the identifier passed to the resolver named by Use
	ID       string `koanf:"id" toml:"id,omitempty" yaml:"id,omitempty"`
	FileName string `koanf:"file_name" toml:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Kind names the declaration the entry uses
func (e ItemEntry) Kind() string {
	switch {
	case e.Local != "":
		return "local"
	case e.URL != nil:
		return "url"
	case e.GitHub != "":
		return "github"
	case e.Use != "":
		return "use"
	}
	return ""
}

// DirEntry declares a child destination directory
type DirEntry struct {
	Path  string      `koanf:"path" toml:"path" yaml:"path"`
	Items []ItemEntry `koanf:"items" toml:"items,omitempty" yaml:"items,omitempty"`
	Dirs  []DirEntry  `koanf:"dirs" toml:"dirs,omitempty" yaml:"dirs,omitempty"`
}

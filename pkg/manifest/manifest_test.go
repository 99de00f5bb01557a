package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/pluck/pkg/config"
	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Settings: config.Settings{Destination: "out", Workers: 1},
		BaseDir:  "/project",
	}
}

func TestBuild(t *testing.T) {
	cfg := baseConfig()
	cfg.Resolvers = []config.ResolverEntry{
		{Name: "cdn", Template: "https://cdn.example.com/{{.ID}}"},
		{Name: "vendor", Local: true, Template: "vendor/{{.ID}}"},
	}
	cfg.Items = []config.ItemEntry{
		{Local: "a.txt"},
		{URL: []interface{}{"https://e.com/1.txt", "https://e.com/2.txt"}},
		{GitHub: "o/r:README.md", FileName: "upstream.md"},
		{Use: "cdn", ID: "lib.js"},
		{Use: "vendor", ID: "x.bin", FileName: "y.bin"},
	}
	cfg.Dirs = []config.DirEntry{
		{Path: "res", Items: []config.ItemEntry{{URL: "https://e.com/s.xml"}}, Dirs: []config.DirEntry{
			{Path: "/abs", Items: []config.ItemEntry{{Local: "deep.txt"}}},
		}},
		{Path: "", Items: []config.ItemEntry{{Local: "ignored.txt"}}},
	}

	root, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/project/out", root.Dir())
	assert.Equal(t, []types.TransferItem{
		{SourcePath: "/project/a.txt", DestinationDirectory: "/project/out", IsLocal: true},
		{SourcePath: "https://e.com/1.txt", DestinationDirectory: "/project/out"},
		{SourcePath: "https://e.com/2.txt", DestinationDirectory: "/project/out"},
		{SourcePath: "https://raw.githubusercontent.com/o/r/master/README.md", DestinationDirectory: "/project/out", CustomFileName: "upstream.md"},
		{SourcePath: "https://cdn.example.com/lib.js", DestinationDirectory: "/project/out"},
		{SourcePath: "/project/vendor/x.bin", DestinationDirectory: "/project/out", CustomFileName: "y.bin", IsLocal: true},
		{SourcePath: "https://e.com/s.xml", DestinationDirectory: "/project/res"},
		{SourcePath: "/project/deep.txt", DestinationDirectory: "/abs", IsLocal: true},
	}, root.Flatten())
	assert.Len(t, root.Children(), 1, "a dir with an empty path is ignored")
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		code   errors.ErrorCode
		entry  string
	}{
		{
			name:   "malformed github",
			mutate: func(c *config.Config) { c.Items = []config.ItemEntry{{Local: "a"}, {GitHub: "nope"}} },
			code:   errors.ErrMalformedGithubSpec,
			entry:  "items[1]",
		},
		{
			name:   "unknown resolver",
			mutate: func(c *config.Config) { c.Items = []config.ItemEntry{{Use: "ghost", ID: "x"}} },
			code:   errors.ErrResolverNotFound,
			entry:  "items[0]",
		},
		{
			name:   "unsupported url value",
			mutate: func(c *config.Config) { c.Items = []config.ItemEntry{{URL: 42}} },
			code:   errors.ErrUnsupportedSourceType,
			entry:  "items[0]",
		},
		{
			name: "bad template",
			mutate: func(c *config.Config) {
				c.Resolvers = []config.ResolverEntry{{Name: "r", Template: "{{.ID"}}
			},
			code:  errors.ErrConfigParse,
			entry: "resolvers[0]",
		},
		{
			name: "nested failure",
			mutate: func(c *config.Config) {
				c.Dirs = []config.DirEntry{{Path: "a", Items: []config.ItemEntry{{Local: "ok"}, {}}}}
			},
			code:  errors.ErrConfigValid,
			entry: "dirs[0].items[1]",
		},
		{
			name:   "empty destination",
			mutate: func(c *config.Config) { c.Settings.Destination = "" },
			code:   errors.ErrEmptyPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			_, err := Build(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			if tt.entry != "" {
				assert.Equal(t, tt.entry, errors.GetErrorDetails(err)["entry"])
			}
		})
	}
}

func TestSampleRoundTrip(t *testing.T) {
	var trees [][]types.TransferItem

	for _, format := range []string{FormatTOML, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteSample(&buf, format))
			assert.True(t, strings.HasPrefix(buf.String(), "# pluck manifest\n"))

			dir := t.TempDir()
			path := filepath.Join(dir, "pluck."+format)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

			cfg, err := config.Load(path)
			require.NoError(t, err)
			assert.Equal(t, 4, cfg.Settings.Workers)

			root, err := Build(cfg)
			require.NoError(t, err)

			items := root.Flatten()
			require.Len(t, items, 6)
			assert.Equal(t, "https://repo1.maven.org/maven2/org/example/lib/1.0/lib-1.0.jar", items[4].SourcePath)
			assert.Equal(t, "lib.jar", items[4].FileName())
			assert.Equal(t, filepath.Join(dir, "build/generated/res"), items[5].DestinationDirectory)

			// compare relative to the manifest dir so both formats line up
			for i := range items {
				items[i].SourcePath = strings.TrimPrefix(items[i].SourcePath, dir)
				items[i].DestinationDirectory = strings.TrimPrefix(items[i].DestinationDirectory, dir)
			}
			trees = append(trees, items)
		})
	}

	require.Len(t, trees, 2)
	assert.Equal(t, trees[0], trees[1])
}

func TestWriteSampleUnknownFormat(t *testing.T) {
	err := WriteSample(&bytes.Buffer{}, "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

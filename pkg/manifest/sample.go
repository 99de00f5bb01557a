package manifest

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pluck/pkg/config"
	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const sampleHeader = `pluck manifest

Each [[items]] entry sets exactly one of: local, url, github, use.
Relative paths resolve against the directory holding this file.
Run "pluck topics manifest" for the full reference.
`

// Sample returns a starter manifest showing every kind of entry
func Sample() *config.Config {
	return &config.Config{
		Settings: config.Settings{
			Destination: "build/generated/source/pluck",
			Workers:     4,
		},
		Manifest: config.Manifest{
			Resolvers: []config.ResolverEntry{
				{
					Name:     "maven",
					Template: `https://repo1.maven.org/maven2/{{index .Parts 0 | replace "." "/"}}/{{index .Parts 1}}/{{index .Parts 2}}/{{index .Parts 1}}-{{index .Parts 2}}.jar`,
				},
			},
			Items: []config.ItemEntry{
				{Local: "assets/logo.png"},
				{URL: []string{"https://example.com/a.txt", "https://example.com/b.txt"}},
				{GitHub: "owner/repo:path/to/file.txt:main"},
				{Use: "maven", ID: "org.example:lib:1.0", FileName: "lib.jar"},
			},
			Dirs: []config.DirEntry{
				{
					Path:  "build/generated/res",
					Items: []config.ItemEntry{{Local: "res/strings.xml"}},
				},
			},
		},
	}
}

// Formats supported by WriteSample
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// WriteSample writes Sample() to w as TOML or YAML
func WriteSample(w io.Writer, format string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(format) {
	case FormatTOML, "":
		data, err = toml.Marshal(Sample())
	case FormatYAML, "yml":
		data, err = yaml.Marshal(Sample())
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported manifest format %q", format)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode sample manifest")
	}

	for _, line := range strings.Split(strings.TrimRight(sampleHeader, "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight("# "+line, " ")); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "cannot write sample manifest")
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write sample manifest")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write sample manifest")
	}
	return nil
}

// Package manifest turns decoded configuration into a section tree and
// generates starter manifests.
package manifest

import (
	"fmt"

	"github.com/arthur-debert/pluck/pkg/config"
	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/resolvers"
	"github.com/arthur-debert/pluck/pkg/section"
	"github.com/arthur-debert/pluck/pkg/sources"
)

// Build creates the root section at settings.destination, defines the
// manifest resolvers, then declares items and child directories in order.
// Extra section options are applied after the base directory option.
func Build(cfg *config.Config, opts ...section.Option) (*section.Section, error) {
	logger := logging.GetLogger("manifest")
	defer logging.LogOperationStart(logger, "build")()

	all := append([]section.Option{section.WithBaseDir(cfg.BaseDir)}, opts...)
	root, err := section.New(cfg.Settings.Destination, all...)
	if err != nil {
		return nil, err
	}

	for i, r := range cfg.Resolvers {
		transform, err := resolvers.Template(r.Template)
		if err != nil {
			return nil, withEntry(err, fmt.Sprintf("resolvers[%d]", i))
		}
		if err := root.DefineCustom(r.Name, r.Local, transform); err != nil {
			return nil, withEntry(err, fmt.Sprintf("resolvers[%d]", i))
		}
	}

	if err := declare(root, "items", cfg.Items); err != nil {
		return nil, err
	}
	if err := declareDirs(root, "dirs", cfg.Dirs); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("destination", root.Dir()).
		Int("items", len(root.Flatten())).
		Int("resolvers", len(cfg.Resolvers)).
		Msg("Built section tree")
	return root, nil
}

func declare(s *section.Section, prefix string, items []config.ItemEntry) error {
	for i, item := range items {
		if err := declareItem(s, item); err != nil {
			return withEntry(err, fmt.Sprintf("%s[%d]", prefix, i))
		}
	}
	return nil
}

func declareDirs(s *section.Section, prefix string, dirs []config.DirEntry) error {
	for i, d := range dirs {
		where := fmt.Sprintf("%s[%d]", prefix, i)
		err := s.DestinationDir(d.Path, func(child *section.Section) error {
			if err := declare(child, where+".items", d.Items); err != nil {
				return err
			}
			return declareDirs(child, where+".dirs", d.Dirs)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func declareItem(s *section.Section, item config.ItemEntry) error {
	if err := item.Validate(); err != nil {
		return err
	}

	switch item.Kind() {
	case "local":
		return s.Local(item.Local, names(item.FileName)...)
	case "url":
		src, err := sources.FromValue(item.URL)
		if err != nil {
			return err
		}
		return s.URL(src)
	case "github":
		return s.GitHub(item.GitHub, names(item.FileName)...)
	case "use":
		return s.UseCustom(item.Use, item.ID, names(item.FileName)...)
	}
	return errors.New(errors.ErrConfigValid, "entry declares nothing")
}

func names(fileName string) []string {
	if fileName == "" {
		return nil
	}
	return []string{fileName}
}

// withEntry records which manifest entry produced err, keeping the first
// (innermost) location
func withEntry(err error, where string) error {
	details := errors.GetErrorDetails(err)
	if details != nil {
		if _, ok := details["entry"]; !ok {
			details["entry"] = where
		}
		return err
	}
	return errors.Wrapf(err, errors.ErrConfigValid, "invalid entry %s", where).WithDetail("entry", where)
}

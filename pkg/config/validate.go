package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/pluck/pkg/errors"
)

// Validate checks settings and manifest entries. The first problem found
// is returned as an ErrConfigValid error naming the offending entry.
func (c *Config) Validate() error {
	s := c.Settings
	if strings.TrimSpace(s.Destination) == "" {
		return invalid("settings.destination", "destination cannot be empty")
	}
	if s.Workers < 0 {
		return invalid("settings.workers", fmt.Sprintf("workers must be zero or more, got %d", s.Workers))
	}
	if s.Timeout < 0 {
		return invalid("settings.timeout", fmt.Sprintf("timeout cannot be negative, got %s", s.Timeout))
	}

	for i, r := range c.Resolvers {
		where := fmt.Sprintf("resolvers[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			return invalid(where, "resolver name cannot be empty")
		}
		if strings.TrimSpace(r.Template) == "" {
			return invalid(where, fmt.Sprintf("resolver %q needs a template", r.Name))
		}
	}

	if err := validateItems("items", c.Items); err != nil {
		return err
	}
	return validateDirs("dirs", c.Dirs)
}

func validateItems(prefix string, items []ItemEntry) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			where := fmt.Sprintf("%s[%d]", prefix, i)
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid entry %s", where).
				WithDetail("entry", where)
		}
	}
	return nil
}

func validateDirs(prefix string, dirs []DirEntry) error {
	for i, d := range dirs {
		where := fmt.Sprintf("%s[%d]", prefix, i)
		if err := validateItems(where+".items", d.Items); err != nil {
			return err
		}
		if err := validateDirs(where+".dirs", d.Dirs); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that exactly one declaration is set and that the
// accompanying fields make sense for it
func (e ItemEntry) Validate() error {
	set := 0
	for _, present := range []bool{e.Local != "", e.URL != nil, e.GitHub != "", e.Use != ""} {
		if present {
			set++
		}
	}
	switch {
	case set == 0:
		return errors.New(errors.ErrConfigValid, "entry must set one of local, url, github or use")
	case set > 1:
		return errors.New(errors.ErrConfigValid, "entry must set only one of local, url, github or use")
	}

	if e.Use != "" && e.ID == "" {
		return errors.Newf(errors.ErrConfigValid, "entry using resolver %q needs an id", e.Use)
	}
	if e.Use == "" && e.ID != "" {
		return errors.New(errors.ErrConfigValid, "id is only valid with use")
	}
	if e.URL != nil && e.FileName != "" {
		return errors.New(errors.ErrConfigValid, "file_name is not supported on url entries")
	}
	return nil
}

func invalid(where, msg string) error {
	return errors.New(errors.ErrConfigValid, msg).WithDetail("entry", where)
}

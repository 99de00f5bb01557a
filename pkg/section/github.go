package section

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/pluck/pkg/errors"
)

const (
	// GitHubRawTemplate is filled with repo, ref and path
	GitHubRawTemplate = "https://raw.githubusercontent.com/%s/%s/%s"

	// DefaultGitHubRef is used when the shorthand carries no ref
	DefaultGitHubRef = "master"
)

// GitHubURL expands "owner/repo:path[:ref]" into a raw-content URL
func GitHubURL(spec string) (string, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", malformedGitHub(spec)
	}

	repo, path, ref := parts[0], parts[1], DefaultGitHubRef
	if len(parts) == 3 {
		ref = parts[2]
	}
	if repo == "" || path == "" || ref == "" {
		return "", malformedGitHub(spec)
	}

	return fmt.Sprintf(GitHubRawTemplate, repo, ref, strings.TrimPrefix(path, "/")), nil
}

func malformedGitHub(spec string) error {
	return errors.Newf(errors.ErrMalformedGithubSpec,
		"github identifier %q must include repo, path and optional ref", spec).
		WithDetail("spec", spec)
}

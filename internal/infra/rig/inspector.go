// Package rig inspects local git repositories for the rig registry.
package rig

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/thinktodo/tt/internal/domain"
)

// Ensure Inspector implements domain.RepoInspector.
var _ domain.RepoInspector = (*Inspector)(nil)

// Inspector reads repository metadata via go-git.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// RemoteURL returns the origin remote URL of the repository at path.
// Returns domain.ErrNotGitRepository if path is not a repository; an empty
// string with nil error if the repository has no origin remote.
func (Inspector) RemoteURL(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%s: %w", path, domain.ErrNotGitRepository)
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

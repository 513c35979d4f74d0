package store

import (
	"fmt"
	"path/filepath"
	"time"

	"ratewatch/internal/config"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitAuditLog commits the configuration file to the repository containing
// it. A config file outside any git repository makes Commit fail, which the
// cycle treats as a stage-local error.
type GitAuditLog struct {
	configPath string
	author     config.Audit
	now        func() time.Time
}

func NewGitAuditLog(configPath string, author config.Audit) *GitAuditLog {
	return &GitAuditLog{configPath: configPath, author: author, now: time.Now}
}

func (g *GitAuditLog) Commit(message string) error {
	abs, err := filepath.Abs(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open audit repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), abs)
	if err != nil {
		return fmt.Errorf("config file outside worktree: %w", err)
	}
	if _, err = worktree.Add(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.author.AuthorName,
			Email: g.author.AuthorEmail,
			When:  g.now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit audit record: %w", err)
	}
	return nil
}

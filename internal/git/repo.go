package git

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	ggit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	ferrors "git.home.luguber.info/inful/docops/internal/foundation/errors"
)

// Head describes the checked out commit.
type Head struct {
	Hash   string
	Branch string // empty when HEAD is detached
}

// Short returns the abbreviated commit hash.
func (h Head) Short() string {
	if len(h.Hash) > 12 {
		return h.Hash[:12]
	}
	return h.Hash
}

// ResolveRoot returns the work tree root of the repository containing start.
// When start is not inside a repository the absolute start directory is
// returned and inRepo is false.
func ResolveRoot(start string) (root string, inRepo bool, err error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("resolve %s: %w", start, err)
	}

	repo, err := ggit.PlainOpenWithOptions(abs, &ggit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, ggit.ErrRepositoryNotExists) {
		slog.Debug("Not inside a git repository, using start directory as root", "dir", abs)
		return abs, false, nil
	}
	if err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "failed to open repository").
			WithContext("path", abs).
			Build()
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to document.
		return abs, false, nil //nolint:nilerr // treated as "not a work tree"
	}
	return wt.Filesystem.Root(), true, nil
}

// ReadHead returns the checked out commit of the repository at root.
func ReadHead(root string) (Head, error) {
	repo, err := ggit.PlainOpen(root)
	if err != nil {
		return Head{}, ferrors.WrapError(err, ferrors.CategoryGit, "failed to open repository").
			WithContext("path", root).
			Build()
	}

	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Head{}, ferrors.GitError("repository has no commits").
				WithContext("path", root).
				Build()
		}
		return Head{}, ferrors.WrapError(err, ferrors.CategoryGit, "failed to resolve HEAD").Build()
	}

	head := Head{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		head.Branch = ref.Name().Short()
	}
	return head, nil
}

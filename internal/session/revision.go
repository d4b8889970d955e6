package session

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Revision identifies the checked out sources of the project.
type Revision struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"` // empty for a detached HEAD
	Dirty  bool   `json:"dirty"`
}

// DetectRevision reads HEAD of the git work tree containing dir.
func DetectRevision(dir string) (*Revision, error) {
	repository, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	ref, err := repository.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	rev := &Revision{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := worktree.Status()
	if err == nil {
		rev.Dirty = !status.IsClean()
	}
	return rev, nil
}

package importservice

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource imports files from a local repository at a revision
type GitSource struct {
	repo *git.Repository
	ref  string
	dir  string
}

// OpenGitSource opens the repository containing repoPath. ref defaults to
// HEAD and dir to the repository root; dir may also name a single file.
func OpenGitSource(repoPath, ref, dir string) (*GitSource, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", repoPath, err)
	}
	return NewGitSource(repo, ref, dir), nil
}

func NewGitSource(repo *git.Repository, ref, dir string) *GitSource {
	if ref == "" {
		ref = "HEAD"
	}
	return &GitSource{repo: repo, ref: ref, dir: strings.Trim(dir, "/")}
}

// Items lists the importable files directly under the source directory
func (g *GitSource) Items(ctx context.Context) ([]Item, error) {
	hash, err := g.repo.ResolveRevision(plumbing.Revision(g.ref))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", g.ref, err)
	}
	commit, err := g.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree %s: %w", hash, err)
	}

	if g.dir != "" {
		sub, err := tree.Tree(g.dir)
		if errors.Is(err, object.ErrDirectoryNotFound) {
			return g.single(tree)
		}
		if err != nil {
			return nil, fmt.Errorf("tree %s: %w", g.dir, err)
		}
		tree = sub
	}

	var items []Item
	for i := range tree.Entries {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		entry := &tree.Entries[i]
		if !entry.Mode.IsFile() || !Importable(entry.Name) {
			continue
		}

		item := Item{Name: entry.Name, URL: g.location(path.Join(g.dir, entry.Name))}
		file, err := tree.TreeEntryFile(entry)
		if err == nil {
			item.Content, err = file.Contents()
		}
		item.Err = err
		items = append(items, item)
	}
	return items, nil
}

func (g *GitSource) single(root *object.Tree) ([]Item, error) {
	file, err := root.File(g.dir)
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", g.dir, g.ref, err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", g.dir, err)
	}
	return []Item{{Name: path.Base(g.dir), URL: g.location(g.dir), Content: content}}, nil
}

func (g *GitSource) location(p string) string {
	return g.ref + ":" + p
}

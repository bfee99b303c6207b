package importservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

func writeFile(t *testing.T, fs billy.Filesystem, name, content string) {
	t.Helper()
	f, err := fs.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func newMemRepo(t *testing.T, files map[string]string) *git.Repository {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		writeFile(t, fs, name, content)
		if _, err := wt.Add(name); err != nil {
			t.Fatal(err)
		}
	}
	_, err = wt.Commit("import fixtures", &git.CommitOptions{
		Author: &object.Signature{Name: "nbview", Email: "nbview@example.com", When: time.Unix(0, 0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestGitSourceItems(t *testing.T) {
	repo := newMemRepo(t, map[string]string{
		"README.md":        "# repo",
		"notes.txt":        "skip",
		"nb/a.ipynb":       `{"cells": []}`,
		"nb/b.py":          "print(2)",
		"nb/data.csv":      "1,2",
		"nb/deep/c.py":     "nested",
		"src/main.go.py":   "x",
		"src/ignored.json": "{}",
	})

	items, err := NewGitSource(repo, "", "").Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "README.md" || items[0].Content != "# repo" {
		t.Errorf("root items = %+v", items)
	}

	items, err = NewGitSource(repo, "HEAD", "/nb/").Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if fmt.Sprint(names) != "[a.ipynb b.py]" {
		t.Errorf("nb items = %v", names)
	}
	if items[1].Content != "print(2)" || items[1].URL != "HEAD:nb/b.py" {
		t.Errorf("b.py = %+v", items[1])
	}

	items, err = NewGitSource(repo, "", "nb/deep/c.py").Items(context.Background())
	if err != nil || len(items) != 1 || items[0].Content != "nested" {
		t.Errorf("single file: %+v, %v", items, err)
	}

	if _, err := NewGitSource(repo, "", "missing").Items(context.Background()); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := NewGitSource(repo, "no-such-branch", "").Items(context.Background()); err == nil {
		t.Error("expected error for unknown ref")
	}
}

package importservice

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Kind tells a single-file import from a directory import
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Source is a parsed GitHub URL of the form
// https://host/owner/repo/{blob|tree}/ref/path...
type Source struct {
	Kind  Kind
	URL   string
	Owner string
	Repo  string
	Ref   string
	Path  string
}

// ParseURL classifies a GitHub URL. Anything without a blob or tree segment
// is ErrInvalidURLFormat.
func ParseURL(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidURLFormat, raw)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 4 {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidURLFormat, raw)
	}

	src := Source{
		URL:   raw,
		Owner: segs[0],
		Repo:  segs[1],
		Ref:   segs[3],
		Path:  strings.Join(segs[4:], "/"),
	}

	switch segs[2] {
	case "blob":
		if src.Path == "" {
			return Source{}, fmt.Errorf("%w: %q has no file path", ErrInvalidURLFormat, raw)
		}
		src.Kind = KindFile
	case "tree":
		src.Kind = KindDirectory
	default:
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidURLFormat, raw)
	}

	if src.Owner == "" || src.Repo == "" || src.Ref == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidURLFormat, raw)
	}
	return src, nil
}

// Name is the file name of a single-file source
func (s Source) Name() string {
	if s.Path == "" {
		return s.Repo
	}
	return path.Base(s.Path)
}

// RawURL swaps the blob segment for raw, which GitHub redirects to the file bytes
func (s Source) RawURL() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return strings.Replace(s.URL, "/blob/", "/raw/", 1)
	}
	u.Fragment = ""
	u.RawQuery = ""
	u.Path = strings.Replace(u.Path, "/blob/", "/raw/", 1)
	u.RawPath = ""
	return u.String()
}

// ContentsURL is the contents API listing of a directory source
func (s Source) ContentsURL(apiBase string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		strings.TrimRight(apiBase, "/"), s.Owner, s.Repo, s.Path, url.QueryEscape(s.Ref))
}

var importable = map[string]bool{".ipynb": true, ".py": true, ".md": true}

// Importable reports whether a directory entry is picked up by an import
func Importable(name string) bool {
	return importable[strings.ToLower(path.Ext(name))]
}

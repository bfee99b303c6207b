package importservice

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// DefaultAPIBase is the GitHub REST endpoint used for directory listings
const DefaultAPIBase = "https://api.github.com"

// Item is one file produced by an import source. Err is set when its content
// could not be fetched; such items are reported and never committed.
type Item struct {
	Name    string
	URL     string
	Content string
	Err     error
}

func (i Item) Failed() bool { return i.Err != nil }

type contentsEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Importer turns GitHub URLs into items
type Importer struct {
	fetch   Fetcher
	apiBase string
	log     *zap.Logger
}

func NewImporter(f Fetcher, apiBase string, log *zap.Logger) *Importer {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{fetch: f, apiBase: apiBase, log: log}
}

// Resolve fetches every file a URL refers to, in listing order.
//
// A blob URL yields one item. A tree URL yields the .ipynb, .py and .md files
// of that directory; a failed file fetch is recorded on its item and the rest
// continue. Failing to fetch the listing itself is returned as an error.
func (im *Importer) Resolve(ctx context.Context, raw string) ([]Item, error) {
	src, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}

	if src.Kind == KindFile {
		body, err := im.fetch.Fetch(ctx, src.RawURL())
		if err != nil {
			return nil, err
		}
		return []Item{{Name: src.Name(), URL: src.RawURL(), Content: string(body)}}, nil
	}

	listURL := src.ContentsURL(im.apiBase)
	im.log.Debug("fetching directory listing", zap.String("url", listURL))

	body, err := im.fetch.Fetch(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var entries []contentsEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FetchError{URL: listURL, Err: fmt.Errorf("decode listing: %w", err)}
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" || !Importable(e.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item := Item{Name: e.Name, URL: e.DownloadURL}
		if e.DownloadURL == "" {
			item.Err = &FetchError{URL: e.Path, Err: fmt.Errorf("no download url")}
		} else if body, err := im.fetch.Fetch(ctx, e.DownloadURL); err != nil {
			item.Err = err
		} else {
			item.Content = string(body)
		}

		if item.Err != nil {
			im.log.Warn("import fetch failed", zap.String("file", e.Name), zap.Error(item.Err))
		}
		items = append(items, item)
	}
	return items, nil
}

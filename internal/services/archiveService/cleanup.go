package archiveservice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type archiveInfo struct {
	path    string
	modTime int64
}

// Cleanup keeps the newest keep backups named name in dir, plus exclude, and
// removes the rest. A keep of zero or less disables cleanup. It returns the
// removed paths.
func Cleanup(dir, name string, keep int, exclude string) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_"+name+".zip"))
	if err != nil {
		return nil, err
	}

	var all []archiveInfo
	for _, p := range matches {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		all = append(all, archiveInfo{path: p, modTime: fi.ModTime().UnixNano()})
	}
	if len(all) <= keep {
		return nil, nil
	}

	// Newest first; the timestamp prefix breaks ties
	sort.Slice(all, func(i, j int) bool {
		if all[i].modTime != all[j].modTime {
			return all[i].modTime > all[j].modTime
		}
		return all[i].path > all[j].path
	})

	var removed []string
	kept := 0
	for _, a := range all {
		if a.path == exclude || kept < keep {
			if a.path != exclude {
				kept++
			}
			continue
		}
		if err := os.Remove(a.path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", a.path, err)
		}
		removed = append(removed, a.path)
	}
	return removed, nil
}

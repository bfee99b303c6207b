// Package archiveservice writes workspace backups as zip archives and reads
// them back for restore.
package archiveservice

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

const (
	timestampLayout = "2006-01-02_15-04-05"
	maxEntrySize    = 32 << 20
)

var ErrNotArchive = errors.New("not a zip archive")

// ArchiveName is the timestamped file name of a backup, e.g.
// 2026-01-02_15-04-05_nbview.zip
func ArchiveName(name string, now time.Time) string {
	name = strings.TrimSuffix(name, ".zip")
	return fmt.Sprintf("%s_%s.zip", now.Format(timestampLayout), name)
}

// Write stores files, in order, in a new archive under dir and returns its
// path. An existing archive with the same name is never overwritten.
func Write(dir, name string, files []filestoreservice.FileEntry, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup dir: %w", err)
	}

	dest := filepath.Join(dir, ArchiveName(name, now))
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	err = writeEntries(f, files, now)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return dest, nil
}

func writeEntries(w io.Writer, files []filestoreservice.FileEntry, now time.Time) error {
	zw := zip.NewWriter(w)
	for _, file := range files {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(entry, file.Content); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Read returns the regular files of an archive in archive order. Nested
// paths are flattened to their base name.
func Read(archivePath string) ([]filestoreservice.FileEntry, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", archivePath, ErrNotArchive)
		}
		return nil, err
	}
	defer r.Close()

	var files []filestoreservice.FileEntry
	for _, zf := range r.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		content, err := readEntry(zf)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", archivePath, zf.Name, err)
		}
		files = append(files, filestoreservice.FileEntry{Name: path.Base(zf.Name), Content: content})
	}
	return files, nil
}

func readEntry(zf *zip.File) (string, error) {
	rc, err := zf.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxEntrySize {
		return "", fmt.Errorf("entry larger than %d bytes", maxEntrySize)
	}
	return string(data), nil
}

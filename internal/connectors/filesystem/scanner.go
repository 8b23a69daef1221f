// Package filesystem discovers corpus files on local disk and watches
// directories for changes.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
	"github.com/custodia-labs/catalog-cli/internal/logger"
)

// excludedNames are OS metadata files that never count as documents.
var excludedNames = map[string]bool{
	".ds_store":   true,
	"desktop.ini": true,
	"thumbs.db":   true,
}

// excludedDirs are junk directories pruned from the walk entirely.
var excludedDirs = map[string]bool{
	"__macosx":                  true,
	"system volume information": true,
	"$recycle.bin":              true,
	".trash":                    true,
	".trashes":                  true,
}

// excluded reports whether a directory entry is filesystem junk.
// Dotfiles, temp files and editor backups are skipped.
func excluded(name string, isDir bool) bool {
	lower := strings.ToLower(name)
	if isDir {
		return strings.HasPrefix(name, ".") || excludedDirs[lower]
	}
	if strings.HasPrefix(name, ".") || excludedNames[lower] {
		return true
	}
	return strings.HasSuffix(lower, ".tmp") || strings.HasSuffix(name, "~")
}

// Scanner walks a corpus directory recursively and returns every
// regular file that is not excluded as junk, in lexical path order.
type Scanner struct{}

var _ driven.CorpusScanner = (*Scanner)(nil)

// NewScanner creates a corpus scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan discovers source files under dir.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]domain.SourceFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	var files []domain.SourceFile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == dir {
			return nil
		}
		if excluded(d.Name(), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		files = append(files, domain.SourceFile{
			Path:   path,
			Format: domain.DetectFormat(path),
			Size:   fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	logger.Debug("Scanned %s: %d files", dir, len(files))
	return files, nil
}

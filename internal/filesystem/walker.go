package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/pkg/models"
	"go.uber.org/zap"
)

// Walker walks the filesystem and reports every entry under a root
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[dir] = true
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// Walk recursively walks the directory tree in lexical order.
// Unlike a best-effort crawl, the first access error stops the walk and is
// returned wrapped in a *models.ScanIOError.
func (w *Walker) Walk(ctx context.Context, root string, callback func(*models.FileInfo) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return &models.ScanIOError{Root: root, Path: path, Err: err}
		}

		// Skip excluded directories
		if d.IsDir() && path != root && w.exclude[d.Name()] {
			w.logger.Debug("Skipping excluded directory", zap.String("path", path))
			return filepath.SkipDir
		}

		info, err := d.Info()
		if err != nil {
			return &models.ScanIOError{Root: root, Path: path, Err: err}
		}

		isSymlink := d.Type()&fs.ModeSymlink != 0
		if isSymlink {
			// Symlinked directories are not descended into; a dangling link
			// is reported as a non-regular entry, not a scan failure
			target, statErr := os.Stat(path)
			if statErr != nil {
				w.logger.Debug("Dangling symlink", zap.String("path", path), zap.Error(statErr))
			} else {
				info = target
			}
		}

		return callback(&models.FileInfo{
			Path:      path,
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			IsDir:     d.IsDir(),
			IsRegular: info.Mode().IsRegular(),
			IsSymlink: isSymlink,
		})
	})
	return err
}

// GetExtension returns the lowercase file extension including the leading dot
func GetExtension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsPrintable reports whether path has an extension in the default allow-list
func IsPrintable(path string) bool {
	return isPrintableWith(nil, path)
}

// IsPrintable reports whether path has an extension in the configured allow-list
func (w *Walker) IsPrintable(path string) bool {
	return isPrintableWith(w.config, path)
}

func isPrintableWith(cfg *config.Config, path string) bool {
	ext := GetExtension(path)
	if ext == "" || ext == "." {
		return false
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg.IsPrintableExtension(ext)
}

package fstree

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Walker scans a directory into a tree.
type Walker struct {
	fs         afero.Fs
	skipHidden bool
	ignore     map[string]bool
	maxDepth   int
	logger     zerolog.Logger
}

// WalkerOption configures a Walker
type WalkerOption func(*Walker)

// WithSkipHidden skips entries whose name starts with a dot
func WithSkipHidden(skip bool) WalkerOption {
	return func(w *Walker) { w.skipHidden = skip }
}

// WithIgnore skips entries with one of the given full names
func WithIgnore(names ...string) WalkerOption {
	return func(w *Walker) {
		for _, n := range names {
			w.ignore[n] = true
		}
	}
}

// WithMaxDepth stops descending below depth levels; 0 means unlimited
func WithMaxDepth(depth int) WalkerOption {
	return func(w *Walker) { w.maxDepth = depth }
}

// NewWalker creates a walker reading from fs
func NewWalker(fs afero.Fs, opts ...WalkerOption) *Walker {
	w := &Walker{
		fs:     fs,
		ignore: make(map[string]bool),
		logger: logging.GetLogger("fstree.walker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk scans root and returns the resulting tree. Unreadable subdirectories
// are kept as empty directories and logged.
func (w *Walker) Walk(ctx context.Context, root string) (*Directory, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWalk, "failed to stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrWalk, "%s is not a directory", root).
			WithDetail("path", root)
	}

	w.logger.Debug().
		Str("root", root).
		Bool("skipHidden", w.skipHidden).
		Int("maxDepth", w.maxDepth).
		Msg("Walking directory")

	dir := NewRoot(filepath.Clean(root))
	if err := w.walkDir(ctx, dir, 1); err != nil {
		return nil, err
	}
	return dir, nil
}

func (w *Walker) walkDir(ctx context.Context, dir *Directory, depth int) error {
	entries, err := afero.ReadDir(w.fs, dir.Path())
	if err != nil {
		if depth == 1 {
			return errors.Wrapf(err, errors.ErrWalk, "failed to read %s", dir.Path())
		}
		w.logger.Warn().Err(err).Str("path", dir.Path()).Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrWalk, "walk cancelled")
		}

		name := entry.Name()
		if w.skipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if w.ignore[name] {
			w.logger.Trace().Str("name", name).Msg("Ignoring entry")
			continue
		}

		if !entry.IsDir() {
			dir.AddFile(name)
			continue
		}

		sub := dir.AddDirectory(name)
		if w.maxDepth > 0 && depth >= w.maxDepth {
			continue
		}
		if err := w.walkDir(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

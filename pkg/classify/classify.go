// Package classify matches the files of a scanned tree against a rule set.
//
// A Classifier is compiled from one snapshot of the rule set and is read-only
// afterwards: it can be shared by any number of goroutines. When the rule set
// changes, build a new Classifier.
package classify

import (
	"context"
	"runtime"

	"github.com/arthur-debert/topdrawer/pkg/decisiontree"
	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/fstree"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Match is a file together with the indices of the rules it satisfies
type Match struct {
	File  *fstree.File
	Rules []int
}

// Classifier evaluates a fixed rule set through a decision tree
type Classifier struct {
	rules   []rules.Rule
	tree    *decisiontree.Tree[rules.Condition]
	workers int
	logger  zerolog.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithWorkers bounds the goroutines used by Classify; values below 1 mean
// one per CPU
func WithWorkers(n int) Option {
	return func(c *Classifier) { c.workers = n }
}

// New compiles rs into a classifier. rs is copied.
func New(rs []rules.Rule, opts ...Option) *Classifier {
	c := &Classifier{
		rules:  append([]rules.Rule(nil), rs...),
		logger: logging.GetLogger("classify"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers < 1 {
		c.workers = runtime.NumCPU()
	}

	paths := make([][]rules.Condition, len(c.rules))
	for i, r := range c.rules {
		paths[i] = r.Conditions()
	}
	c.tree = decisiontree.Build(paths)

	c.logger.Debug().
		Int("rules", c.tree.Len()).
		Int("nodes", c.tree.Nodes()).
		Int("distinctConditions", c.tree.Distinct()).
		Msg("Compiled decision tree")

	return c
}

// Rules returns the rule set the classifier was built from
func (c *Classifier) Rules() []rules.Rule {
	return append([]rules.Rule(nil), c.rules...)
}

// Tree exposes the compiled decision tree
func (c *Classifier) Tree() *decisiontree.Tree[rules.Condition] { return c.tree }

// Match returns the indices of the rules f satisfies, in ascending order
func (c *Classifier) Match(f *fstree.File) []int {
	return c.MatchIn(f, fstree.HierarchyOf(f))
}

// MatchIn is Match with the hierarchy of f supplied by the caller
func (c *Classifier) MatchIn(f *fstree.File, h fstree.Hierarchy) []int {
	return c.tree.Evaluate(func(cond rules.Condition) bool {
		return cond.Matches(f, h)
	})
}

// MatchDirect evaluates every rule on its own, without the decision tree. It
// returns the same indices as Match.
func (c *Classifier) MatchDirect(f *fstree.File) []int {
	h := fstree.HierarchyOf(f)
	var out []int
	for i, r := range c.rules {
		if r.Includes(f, h) {
			out = append(out, i)
		}
	}
	return out
}

// Includes reports whether f satisfies at least one rule
func (c *Classifier) Includes(f *fstree.File) bool {
	return len(c.Match(f)) > 0
}

// Classify matches every entry below root and returns, in pre-order, those
// satisfying at least one rule. Entries are spread across workers; the tree
// and the classifier are only read.
func (c *Classifier) Classify(ctx context.Context, root *fstree.Directory) ([]Match, error) {
	done := logging.LogOperationStart(c.logger, "classify")
	defer done()

	entries := collect(root, nil)
	results := make([][]int, len(entries))

	chunk := (len(entries) + c.workers - 1) / c.workers
	if chunk == 0 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for start := 0; start < len(entries); start += chunk {
		start, end := start, min(start+chunk, len(entries))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = c.Match(entries[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrClassify, "classification interrupted")
	}

	var matches []Match
	for i, r := range results {
		if len(r) > 0 {
			matches = append(matches, Match{File: entries[i], Rules: r})
		}
	}

	c.logger.Info().
		Int("entries", len(entries)).
		Int("matches", len(matches)).
		Int("workers", c.workers).
		Msg("Classified tree")

	return matches, nil
}

func collect(dir *fstree.Directory, out []*fstree.File) []*fstree.File {
	for _, child := range dir.Children() {
		out = append(out, child)
		if child.IsDirectory() {
			out = collect(child.Directory(), out)
		}
	}
	return out
}

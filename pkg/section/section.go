package section

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/resolvers"
	"github.com/arthur-debert/pluck/pkg/sources"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/arthur-debert/pluck/pkg/utils"
)

// Builder configures a child section
type Builder func(s *Section) error

// Section is a node of the destination tree
type Section struct {
	dir      string
	items    []types.TransferItem
	children []*Section
	tree     *tree
}

// tree holds what every section of one tree shares
type tree struct {
	baseDir   string
	resolvers *resolvers.Registry
}

// Option configures a new root section
type Option func(*tree)

// WithBaseDir sets the directory relative paths are resolved against.
// It defaults to the process working directory.
func WithBaseDir(dir string) Option {
	return func(t *tree) {
		t.baseDir = dir
	}
}

// WithResolvers uses an existing resolver registry instead of a new one
func WithResolvers(reg *resolvers.Registry) Option {
	return func(t *tree) {
		if reg != nil {
			t.resolvers = reg
		}
	}
}

// New creates the root section of a tree, writing into dir
func New(dir string, opts ...Option) (*Section, error) {
	t := &tree{resolvers: resolvers.NewRegistry()}
	for _, opt := range opts {
		opt(t)
	}

	if t.baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		t.baseDir = wd
	}
	if !filepath.IsAbs(t.baseDir) {
		abs, err := filepath.Abs(t.baseDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid base directory %s", t.baseDir)
		}
		t.baseDir = abs
	}

	if dir == "" {
		return nil, errors.New(errors.ErrEmptyPath, "destination directory cannot be empty")
	}

	return &Section{dir: t.resolve(dir), tree: t}, nil
}

// resolve expands a leading "~" and makes p absolute against the base dir
func (t *tree) resolve(p string) string {
	if expanded, err := utils.ExpandHome(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(t.baseDir, p)
}

// Dir is the absolute destination directory of this section
func (s *Section) Dir() string {
	return s.dir
}

// Items returns the items declared directly on this section, in order
func (s *Section) Items() []types.TransferItem {
	out := make([]types.TransferItem, len(s.items))
	copy(out, s.items)
	return out
}

// Children returns the child sections, in order
func (s *Section) Children() []*Section {
	out := make([]*Section, len(s.children))
	copy(out, s.children)
	return out
}

// Resolvers returns the registry shared by the whole tree
func (s *Section) Resolvers() *resolvers.Registry {
	return s.tree.resolvers
}

// Local declares a file copied from the local filesystem. The optional
// file name overrides the source basename.
func (s *Section) Local(path string, fileName ...string) error {
	if path == "" {
		return errors.New(errors.ErrEmptyPath, "local path cannot be empty").
			WithDetail("directory", s.dir)
	}
	name, err := customFileName(fileName)
	if err != nil {
		return err
	}
	s.add(types.TransferItem{
		SourcePath:     s.tree.resolve(path),
		CustomFileName: name,
		IsLocal:        true,
	})
	return nil
}

// URL declares one remote item per URL the source resolves to. Either
// every URL is added or, on error, none are.
func (s *Section) URL(src sources.Source) error {
	if src == nil {
		return errors.New(errors.ErrUnsupportedSourceType, "url source cannot be nil")
	}
	urls, err := src.Resolve()
	if err != nil {
		return err
	}
	for _, u := range urls {
		s.add(types.TransferItem{SourcePath: u})
	}
	return nil
}

// URLs is URL for plain strings
func (s *Section) URLs(urls ...string) error {
	return s.URL(sources.Strings(urls...))
}

// GitHub declares a remote item from "owner/repo:path[:ref]"
func (s *Section) GitHub(spec string, fileName ...string) error {
	u, err := GitHubURL(spec)
	if err != nil {
		return err
	}
	name, err := customFileName(fileName)
	if err != nil {
		return err
	}
	s.add(types.TransferItem{SourcePath: u, CustomFileName: name})
	return nil
}

// DefineCustom registers a resolver in the tree's registry
func (s *Section) DefineCustom(name string, local bool, transform resolvers.TransformFunc) error {
	return s.tree.resolvers.Define(name, local, transform)
}

// UseCustom resolves id with the named resolver and declares the result
func (s *Section) UseCustom(name, id string, fileName ...string) error {
	custom, err := customFileName(fileName)
	if err != nil {
		return err
	}
	source, local, err := s.tree.resolvers.Invoke(name, id)
	if err != nil {
		return err
	}
	if local {
		source = s.tree.resolve(source)
	}
	s.add(types.TransferItem{
		SourcePath:     source,
		CustomFileName: custom,
		IsLocal:        local,
	})
	return nil
}

// DestinationDir declares a child section writing into path. An empty
// path is ignored and the builder is not called. The child is attached
// only when the builder succeeds.
func (s *Section) DestinationDir(path string, build Builder) error {
	if path == "" {
		logger := logging.GetLogger("section")
		logger.Debug().
			Str("parent", s.dir).
			Msg("Ignoring destination dir with empty path")
		return nil
	}

	child := &Section{dir: s.tree.resolve(path), tree: s.tree}
	if build != nil {
		if err := build(child); err != nil {
			return err
		}
	}
	s.children = append(s.children, child)
	return nil
}

// Flatten returns every item of the tree depth-first: this section's
// items in order, then each child's items.
func (s *Section) Flatten() []types.TransferItem {
	var out []types.TransferItem
	s.Walk(func(sec *Section) {
		out = append(out, sec.items...)
	})
	return out
}

// Walk visits this section and then its children, depth-first
func (s *Section) Walk(visit func(*Section)) {
	visit(s)
	for _, c := range s.children {
		c.Walk(visit)
	}
}

func (s *Section) add(item types.TransferItem) {
	item.DestinationDirectory = s.dir
	s.items = append(s.items, item)
}

// customFileName returns the optional file name argument. The name replaces
// the output basename, so it cannot hold a directory part.
func customFileName(names []string) (string, error) {
	if len(names) == 0 || names[0] == "" {
		return "", nil
	}
	name := names[0]
	if name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", errors.Newf(errors.ErrInvalidInput, "file name %q must be a plain file name", name).
			WithDetail("fileName", name)
	}
	return name, nil
}

// Package resolvers holds named transforms that turn an identifier into a
// concrete source path or URL. A resolver is looked up by name while a
// section tree is being declared.
package resolvers

import (
	"strings"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/registry"
)

// TransformFunc maps an identifier to a source path or URL
type TransformFunc func(id string) (string, error)

// Resolver is a named transform plus the kind of source it produces
type Resolver struct {
	Name      string
	Local     bool
	Transform TransformFunc
}

// Registry maps resolver names to resolvers. One registry is shared by
// every section of a tree.
type Registry struct {
	reg *registry.Registry[Resolver]
}

// NewRegistry creates an empty resolver registry
func NewRegistry() *Registry {
	return &Registry{reg: registry.New[Resolver]()}
}

// Define stores a resolver. Redefining a name replaces the previous resolver.
func (r *Registry) Define(name string, local bool, transform TransformFunc) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "resolver name cannot be empty")
	}
	if transform == nil {
		return errors.Newf(errors.ErrInvalidInput, "resolver %q has no transform", name)
	}

	logger := logging.GetLogger("resolvers")
	if r.reg.Has(name) {
		logger.Debug().Str("resolver", name).Msg("Replacing resolver")
	}

	return r.reg.Set(name, Resolver{Name: name, Local: local, Transform: transform})
}

// Lookup returns the resolver registered under name
func (r *Registry) Lookup(name string) (Resolver, error) {
	res, ok := r.reg.Get(name)
	if !ok {
		return Resolver{}, errors.Newf(errors.ErrResolverNotFound, "no resolver named %q", name).
			WithDetail("resolver", name).
			WithDetail("known", r.reg.Names())
	}
	return res, nil
}

// Invoke runs the named resolver on id and returns the resolved source and
// whether it is a local path.
func (r *Registry) Invoke(name, id string) (string, bool, error) {
	res, err := r.Lookup(name)
	if err != nil {
		return "", false, err
	}

	source, err := res.Transform(id)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrResolverFailed, "resolver %q failed for %q", name, id).
			WithDetail("resolver", name).
			WithDetail("id", id)
	}
	if source == "" {
		return "", false, errors.Newf(errors.ErrEmptyPath, "resolver %q returned an empty path for %q", name, id).
			WithDetail("resolver", name).
			WithDetail("id", id)
	}

	logger := logging.GetLogger("resolvers")
	logger.Trace().
		Str("resolver", name).
		Str("id", id).
		Str("source", source).
		Bool("local", res.Local).
		Msg("Resolved identifier")

	return source, res.Local, nil
}

// Names lists registered resolver names in sorted order
func (r *Registry) Names() []string {
	return r.reg.Names()
}

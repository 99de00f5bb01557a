// Package sources describes where remote items come from. A Source is a
// closed set of variants: a single URL string, a parsed URL, an ordered
// collection of sources, or a deferred producer of a source.
package sources

import (
	"net/url"

	"github.com/arthur-debert/pluck/pkg/errors"
)

// Source resolves to an ordered list of URL strings
type Source interface {
	// Resolve returns every URL the source stands for, in order. It either
	// returns all of them or an error.
	Resolve() ([]string, error)

	isSource()
}

// Single is one URL given as a string
type Single string

// Resolve implements Source
func (s Single) Resolve() ([]string, error) {
	if s == "" {
		return nil, errors.New(errors.ErrEmptyPath, "url cannot be empty")
	}
	return []string{string(s)}, nil
}

func (Single) isSource() {}

// urlSource wraps a parsed URL
type urlSource struct {
	u *url.URL
}

// FromURL returns a Source for a parsed URL, using its canonical string form
func FromURL(u *url.URL) Source {
	return urlSource{u: u}
}

// Resolve implements Source
func (s urlSource) Resolve() ([]string, error) {
	if s.u == nil {
		return nil, errors.New(errors.ErrEmptyPath, "url cannot be nil")
	}
	return Single(s.u.String()).Resolve()
}

func (urlSource) isSource() {}

// Many is an ordered collection of sources
type Many []Source

// Resolve implements Source. Elements are resolved in order and the first
// error discards everything resolved so far.
func (m Many) Resolve() ([]string, error) {
	var out []string
	for i, s := range m {
		if s == nil {
			return nil, errors.Newf(errors.ErrUnsupportedSourceType, "element %d is nil", i)
		}
		urls, err := s.Resolve()
		if err != nil {
			return nil, err
		}
		out = append(out, urls...)
	}
	return out, nil
}

func (Many) isSource() {}

// Producer builds a source on demand
type Producer func() (Source, error)

type lazySource struct {
	produce Producer
}

// Lazy returns a Source whose producer is invoked at resolution time
func Lazy(produce Producer) Source {
	return lazySource{produce: produce}
}

// Resolve implements Source
func (l lazySource) Resolve() ([]string, error) {
	if l.produce == nil {
		return nil, errors.New(errors.ErrUnsupportedSourceType, "lazy source has no producer")
	}
	s, err := l.produce()
	if err != nil {
		if errors.GetErrorCode(err) != errors.ErrUnknown {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "lazy source failed")
	}
	if s == nil {
		return nil, errors.New(errors.ErrUnsupportedSourceType, "lazy source produced nothing")
	}
	return s.Resolve()
}

func (lazySource) isSource() {}

// Strings is a convenience for a collection of URL strings
func Strings(urls ...string) Source {
	m := make(Many, len(urls))
	for i, u := range urls {
		m[i] = Single(u)
	}
	return m
}

package sources

import (
	"fmt"
	"net/url"

	"github.com/arthur-debert/pluck/pkg/errors"
)

// FromValue converts an untyped value, as found in decoded manifests or
// passed by callers, into a Source. Accepted values are strings, URLs,
// slices of accepted values, zero-argument functions returning an accepted
// value, and Sources. Anything else fails with ErrUnsupportedSourceType.
func FromValue(v any) (Source, error) {
	switch val := v.(type) {
	case Source:
		return val, nil
	case string:
		return Single(val), nil
	case *url.URL:
		return FromURL(val), nil
	case url.URL:
		return FromURL(&val), nil
	case []string:
		return Strings(val...), nil
	case []*url.URL:
		m := make(Many, len(val))
		for i, u := range val {
			m[i] = FromURL(u)
		}
		return m, nil
	case []Source:
		return Many(val), nil
	case []any:
		m := make(Many, 0, len(val))
		for _, elem := range val {
			s, err := FromValue(elem)
			if err != nil {
				return nil, err
			}
			m = append(m, s)
		}
		return m, nil
	case func() string:
		return Lazy(func() (Source, error) { return Single(val()), nil }), nil
	case func() *url.URL:
		return Lazy(func() (Source, error) { return FromURL(val()), nil }), nil
	case func() []string:
		return Lazy(func() (Source, error) { return Strings(val()...), nil }), nil
	case func() Source:
		return Lazy(func() (Source, error) { return val(), nil }), nil
	case func() any:
		return Lazy(func() (Source, error) { return FromValue(val()) }), nil
	case Producer:
		return Lazy(val), nil
	case func() (Source, error):
		return Lazy(val), nil
	case nil:
		return nil, errors.New(errors.ErrUnsupportedSourceType, "source value is nil")
	default:
		return nil, errors.Newf(errors.ErrUnsupportedSourceType, "unsupported source type %T", v).
			WithDetail("type", fmt.Sprintf("%T", v))
	}
}

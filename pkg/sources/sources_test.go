package sources_test

import (
	stderrors "errors"
	"net/url"
	"testing"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/arthur-debert/pluck/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		source sources.Source
		want   []string
	}{
		{
			name:   "single",
			source: sources.Single("https://example.com/a.txt"),
			want:   []string{"https://example.com/a.txt"},
		},
		{
			name:   "parsed url",
			source: sources.FromURL(mustParse(t, "https://example.com/dir/b.txt?x=1")),
			want:   []string{"https://example.com/dir/b.txt?x=1"},
		},
		{
			name:   "collection keeps order",
			source: sources.Strings("https://e.com/1", "https://e.com/2", "https://e.com/3"),
			want:   []string{"https://e.com/1", "https://e.com/2", "https://e.com/3"},
		},
		{
			name: "nested collection flattens",
			source: sources.Many{
				sources.Single("https://e.com/1"),
				sources.Many{sources.Single("https://e.com/2"), sources.Single("https://e.com/3")},
			},
			want: []string{"https://e.com/1", "https://e.com/2", "https://e.com/3"},
		},
		{
			name: "lazy producer",
			source: sources.Lazy(func() (sources.Source, error) {
				return sources.Single("https://e.com/lazy"), nil
			}),
			want: []string{"https://e.com/lazy"},
		},
		{
			name:   "empty collection",
			source: sources.Many{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.source.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsAllOrNothing(t *testing.T) {
	src := sources.Many{
		sources.Single("https://e.com/1"),
		sources.Single(""),
		sources.Single("https://e.com/3"),
	}

	got, err := src.Resolve()
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyPath))
}

func TestLazyErrors(t *testing.T) {
	t.Run("plain producer error is wrapped", func(t *testing.T) {
		cause := stderrors.New("boom")
		_, err := sources.Lazy(func() (sources.Source, error) { return nil, cause }).Resolve()
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("coded producer error passes through", func(t *testing.T) {
		_, err := sources.Lazy(func() (sources.Source, error) {
			return nil, errors.New(errors.ErrMalformedGithubSpec, "bad")
		}).Resolve()
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedGithubSpec))
	})

	t.Run("nil result", func(t *testing.T) {
		_, err := sources.Lazy(func() (sources.Source, error) { return nil, nil }).Resolve()
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedSourceType))
	})

	t.Run("nil producer", func(t *testing.T) {
		_, err := sources.Lazy(nil).Resolve()
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedSourceType))
	})
}

func TestFromURLNil(t *testing.T) {
	_, err := sources.FromURL(nil).Resolve()
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyPath))
}

func TestFromValue(t *testing.T) {
	u := mustParse(t, "https://e.com/u.txt")

	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"string", "https://e.com/a", []string{"https://e.com/a"}},
		{"url pointer", u, []string{"https://e.com/u.txt"}},
		{"url value", *u, []string{"https://e.com/u.txt"}},
		{"string slice", []string{"https://e.com/a", "https://e.com/b"}, []string{"https://e.com/a", "https://e.com/b"}},
		{"url slice", []*url.URL{u, u}, []string{"https://e.com/u.txt", "https://e.com/u.txt"}},
		{"mixed any slice", []any{"https://e.com/a", u, []any{"https://e.com/c"}}, []string{"https://e.com/a", "https://e.com/u.txt", "https://e.com/c"}},
		{"string func", func() string { return "https://e.com/f" }, []string{"https://e.com/f"}},
		{"url func", func() *url.URL { return u }, []string{"https://e.com/u.txt"}},
		{"slice func", func() []string { return []string{"https://e.com/1", "https://e.com/2"} }, []string{"https://e.com/1", "https://e.com/2"}},
		{"any func", func() any { return []any{"https://e.com/x"} }, []string{"https://e.com/x"}},
		{"source", sources.Single("https://e.com/s"), []string{"https://e.com/s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := sources.FromValue(tt.value)
			require.NoError(t, err)
			got, err := src.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromValueUnsupported(t *testing.T) {
	for name, v := range map[string]any{
		"int":         42,
		"nil":         nil,
		"map":         map[string]string{"a": "b"},
		"nested bad":  []any{"https://e.com/a", 3.14},
		"func w/ arg": func(string) string { return "" },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sources.FromValue(v)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedSourceType))
		})
	}
}

func TestFromValueFuncIsDeferred(t *testing.T) {
	calls := 0
	src, err := sources.FromValue(func() string {
		calls++
		return "https://e.com/a"
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)

	_, err = src.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

package resolvers

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/pluck/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(id string) (string, error) { return id, nil }

func TestDefineAndInvoke(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define("cdn", false, func(id string) (string, error) {
		return "https://cdn.example.com/" + id, nil
	}))
	require.NoError(t, reg.Define("vendor", true, func(id string) (string, error) {
		return "/vendor/" + id, nil
	}))

	source, local, err := reg.Invoke("cdn", "lib.js")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/lib.js", source)
	assert.False(t, local)

	source, local, err = reg.Invoke("vendor", "x.txt")
	require.NoError(t, err)
	assert.Equal(t, "/vendor/x.txt", source)
	assert.True(t, local)

	assert.Equal(t, []string{"cdn", "vendor"}, reg.Names())
}

func TestDefineLastWriteWins(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define("r", false, func(string) (string, error) { return "https://first", nil }))
	require.NoError(t, reg.Define("r", true, func(string) (string, error) { return "/second", nil }))

	source, local, err := reg.Invoke("r", "id")
	require.NoError(t, err)
	assert.Equal(t, "/second", source)
	assert.True(t, local)
	assert.Len(t, reg.Names(), 1)
}

func TestDefineRejectsInvalid(t *testing.T) {
	reg := NewRegistry()

	err := reg.Define("", false, identity)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Define("x", false, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, reg.Names())
}

func TestInvokeErrors(t *testing.T) {
	reg := NewRegistry()
	cause := stderrors.New("unknown artifact")
	require.NoError(t, reg.Define("broken", false, func(string) (string, error) { return "", cause }))
	require.NoError(t, reg.Define("empty", false, func(string) (string, error) { return "", nil }))

	t.Run("missing resolver", func(t *testing.T) {
		_, _, err := reg.Invoke("nope", "id")
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolverNotFound))
		assert.Equal(t, "nope", errors.GetErrorDetails(err)["resolver"])
	})

	t.Run("transform error", func(t *testing.T) {
		_, _, err := reg.Invoke("broken", "id")
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolverFailed))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("empty result", func(t *testing.T) {
		_, _, err := reg.Invoke("empty", "id")
		assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyPath))
	})
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		id       string
		want     string
	}{
		{
			name:     "maven layout",
			template: `https://repo1.maven.org/maven2/{{index .Parts 0 | replace "." "/"}}/{{index .Parts 1}}/{{index .Parts 2}}/{{index .Parts 1}}-{{index .Parts 2}}.jar`,
			id:       "org.example:lib:1.0",
			want:     "https://repo1.maven.org/maven2/org/example/lib/1.0/lib-1.0.jar",
		},
		{
			name:     "whole id",
			template: "https://cdn.example.com/{{.ID}}",
			id:       "a/b.js",
			want:     "https://cdn.example.com/a/b.js",
		},
		{
			name:     "case helpers",
			template: "/icons/{{lower .ID}}-{{upper .ID}}.svg",
			id:       "Star",
			want:     "/icons/star-STAR.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, err := Template(tt.template)
			require.NoError(t, err)
			got, err := transform(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateErrors(t *testing.T) {
	_, err := Template("{{.ID")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	transform, err := Template("{{index .Parts 3}}")
	require.NoError(t, err)
	_, err = transform("a:b")
	assert.Error(t, err, "out of range index fails at execution")
}

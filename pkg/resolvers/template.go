package resolvers

import (
	"strings"
	"text/template"

	"github.com/arthur-debert/pluck/pkg/errors"
)

// TemplateData is the data passed to resolver templates
type TemplateData struct {
	// ID is the identifier as given
	ID string

	// Parts is ID split on ":"
	Parts []string
}

var templateFuncs = template.FuncMap{
	// replace from to s; the subject comes last so it works in pipelines
	"replace": func(from, to, s string) string { return strings.ReplaceAll(s, from, to) },
	"lower":   strings.ToLower,
	"upper":   strings.ToUpper,
}

// Template builds a transform from a text/template. The template sees a
// TemplateData value, for example:
//
//	https://repo1.maven.org/maven2/{{index .Parts 0 | replace "." "/"}}/{{index .Parts 1}}/{{index .Parts 2}}/{{index .Parts 1}}-{{index .Parts 2}}.jar
func Template(text string) (TransformFunc, error) {
	tmpl, err := template.New("resolver").Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid resolver template").
			WithDetail("template", text)
	}

	return func(id string) (string, error) {
		var sb strings.Builder
		data := TemplateData{ID: id, Parts: strings.Split(id, ":")}
		if err := tmpl.Execute(&sb, data); err != nil {
			return "", err
		}
		return strings.TrimSpace(sb.String()), nil
	}, nil
}

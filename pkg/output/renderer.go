package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/arthur-debert/pluck/pkg/logging"
	"github.com/arthur-debert/pluck/pkg/output/styles"
	"github.com/arthur-debert/pluck/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes styled reports to a writer
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	noColor   bool
	lg        *lipgloss.Renderer
}

// NewRenderer creates a Renderer writing to w. When noColor is true every
// style is stripped.
func NewRenderer(w io.Writer, noColor bool) (*Renderer, error) {
	r := &Renderer{writer: w, noColor: noColor}
	if !noColor {
		r.lg = lipgloss.NewRenderer(w)
		logger := logging.GetLogger("output")
		logger.Debug().
			Str("colorProfile", fmt.Sprintf("%v", r.lg.ColorProfile())).
			Msg("Lipgloss renderer created")
	}

	tmpl, err := template.New("output").Funcs(r.funcs()).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"style":    r.style,
		"marker":   r.marker,
		"dest":     destination,
		"size":     humanSize,
		"duration": roundDuration,
		"join":     strings.Join,
	}
}

// style applies the named style to text
func (r *Renderer) style(name, text string) string {
	if r.noColor || r.lg == nil {
		return text
	}
	return r.lg.NewStyle().Inherit(styles.GetStyle(name)).Render(text)
}

func (r *Renderer) marker(res types.ItemResult) string {
	switch {
	case res.Success:
		return r.style("Success", "ok  ")
	case res.Skipped:
		return r.style("Skipped", "skip")
	default:
		return r.style("Error", "FAIL")
	}
}

func destination(item types.TransferItem) string {
	if p := item.DestinationPath(); p != "" {
		return p
	}
	return item.DestinationDirectory + "/?"
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func roundDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

// PlanView is the data shown by RenderPlan
type PlanView struct {
	Root      string
	Items     []types.TransferItem
	Resolvers []string
}

// RenderReport writes the outcome of a run
func (r *Renderer) RenderReport(report *types.Report) error {
	return r.execute("report.tmpl", report)
}

// RenderPlan writes the items a run would acquire
func (r *Renderer) RenderPlan(plan PlanView) error {
	return r.execute("plan.tmpl", plan)
}

// RenderError writes an error message
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.style("Error", "Error:"), err.Error())
	return writeErr
}

func (r *Renderer) execute(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := fmt.Fprintln(r.writer, strings.TrimLeft(buf.String(), "\n"))
	return err
}

package notify

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	gotemplate "github.com/goliatone/go-template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Templates configures the text of save notifications. Success is rendered
// with the variables message and id.
type Templates struct {
	Title   string `yaml:"title" json:"title"`
	Success string `yaml:"success" json:"success"`
	Failure string `yaml:"failure" json:"failure"`
}

var (
	defaultsOnce sync.Once
	defaults     Templates
)

// DefaultTemplates returns the stock notification text bundled with the
// package.
func DefaultTemplates() Templates {
	defaultsOnce.Do(func() {
		defaults = Templates{
			Title:   mustReadTemplate("title"),
			Success: mustReadTemplate("success"),
			Failure: mustReadTemplate("failure"),
		}
	})
	return defaults
}

// TemplateFS exposes the bundled notification templates.
func TemplateFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("notify: templates fs: %v", err))
	}
	return sub
}

func mustReadTemplate(name string) string {
	data, err := fs.ReadFile(TemplateFS(), name+".tpl")
	if err != nil {
		panic(fmt.Sprintf("notify: read template %q: %v", name, err))
	}
	return strings.TrimSpace(string(data))
}

// StringRenderer renders inline template content.
type StringRenderer interface {
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// Composer renders notification messages.
type Composer struct {
	renderer StringRenderer
	title    string
	success  string
	failure  string
}

// NewComposer builds a Composer on a go-template renderer. Empty entries fall
// back to the defaults and every template is rendered once so syntax errors
// surface here.
func NewComposer(templates Templates) (*Composer, error) {
	renderer, err := defaultRenderer()
	if err != nil {
		return nil, err
	}
	return NewComposerWithRenderer(renderer, templates)
}

var (
	rendererOnce   sync.Once
	sharedRenderer StringRenderer
	rendererErr    error
)

// defaultRenderer builds the shared go-template renderer once; the engine
// registers its filters process wide.
func defaultRenderer() (StringRenderer, error) {
	rendererOnce.Do(func() {
		engine, err := gotemplate.NewRenderer(gotemplate.WithFS(TemplateFS()))
		if err != nil {
			rendererErr = fmt.Errorf("notify: template renderer: %w", err)
			return
		}
		sharedRenderer = engine
	})
	return sharedRenderer, rendererErr
}

// NewComposerWithRenderer builds a Composer that renders through renderer.
func NewComposerWithRenderer(renderer StringRenderer, templates Templates) (*Composer, error) {
	if renderer == nil {
		return nil, fmt.Errorf("notify: template renderer is nil")
	}
	stock := DefaultTemplates()
	if strings.TrimSpace(templates.Title) == "" {
		templates.Title = stock.Title
	}
	if strings.TrimSpace(templates.Success) == "" {
		templates.Success = stock.Success
	}
	if strings.TrimSpace(templates.Failure) == "" {
		templates.Failure = stock.Failure
	}

	c := &Composer{
		renderer: renderer,
		title:    templates.Title,
		success:  templates.Success,
		failure:  templates.Failure,
	}
	if _, err := c.render(c.success, nil); err != nil {
		return nil, fmt.Errorf("notify: parse success template: %w", err)
	}
	if _, err := c.render(c.failure, nil); err != nil {
		return nil, fmt.Errorf("notify: parse failure template: %w", err)
	}
	return c, nil
}

// MustComposer is NewComposer that panics on invalid templates.
func MustComposer(templates Templates) *Composer {
	c, err := NewComposer(templates)
	if err != nil {
		panic(err)
	}
	return c
}

// Title returns the notification title.
func (c *Composer) Title() string {
	return c.title
}

// Success renders the success message for a created profile.
func (c *Composer) Success(message, id string) (string, error) {
	out, err := c.render(c.success, map[string]any{
		"message": message,
		"id":      id,
	})
	if err != nil {
		return "", fmt.Errorf("notify: render success: %w", err)
	}
	return out, nil
}

// Failure renders the fixed failure message.
func (c *Composer) Failure() (string, error) {
	out, err := c.render(c.failure, nil)
	if err != nil {
		return "", fmt.Errorf("notify: render failure: %w", err)
	}
	return out, nil
}

// render disables autoescaping: notifications are plain text and server
// messages are shown verbatim.
func (c *Composer) render(content string, data map[string]any) (string, error) {
	if data == nil {
		data = map[string]any{}
	}
	return c.renderer.RenderString("{% autoescape off %}"+content+"{% endautoescape %}", data)
}

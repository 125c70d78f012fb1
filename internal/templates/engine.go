package templates

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cbroglie/mustache"
)

// Engine names.
const (
	EngineMustache   = "mustache"
	EngineGoTemplate = "gotmpl"
)

// Engines lists the supported engine names. The first is the default.
var Engines = []string{EngineMustache, EngineGoTemplate}

// ErrUnknownEngine indicates an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown template engine")

// Renderer substitutes values into template text.
type Renderer interface {
	// Name is the engine name.
	Name() string

	// Suffix is the file suffix identifying templates for this engine.
	Suffix() string

	// Render substitutes values into text. name is used in error messages.
	Render(name, text string, values map[string]any) (string, error)
}

// NewRenderer returns the renderer for engine. An empty name selects the
// default engine.
func NewRenderer(engine string) (Renderer, error) {
	switch engine {
	case "", EngineMustache:
		return MustacheRenderer{}, nil
	case EngineGoTemplate:
		return GoTemplateRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownEngine, engine, Engines)
	}
}

// MustacheRenderer renders logic-less mustache templates.
// Missing variables render as empty strings.
type MustacheRenderer struct{}

func (MustacheRenderer) Name() string   { return EngineMustache }
func (MustacheRenderer) Suffix() string { return ".mustache" }

func (MustacheRenderer) Render(name, text string, values map[string]any) (string, error) {
	if values == nil {
		values = map[string]any{}
	}
	out, err := mustache.Render(text, values)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out, nil
}

// GoTemplateRenderer renders text/template templates with the sprig
// function map.
type GoTemplateRenderer struct{}

func (GoTemplateRenderer) Name() string   { return EngineGoTemplate }
func (GoTemplateRenderer) Suffix() string { return ".tmpl" }

func (GoTemplateRenderer) Render(name, text string, values map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

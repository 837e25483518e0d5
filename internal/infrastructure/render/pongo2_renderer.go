// Package render implementa ports.TemplateRenderer con pongo2 (sintaxis Jinja2/Django).
package render

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
)

// cacheSize máximo de plantillas compiladas retenidas; las menos usadas se descartan.
const cacheSize = 128

var _ ports.TemplateRenderer = (*Pongo2Renderer)(nil)

// Pongo2Renderer compila y cachea (LRU) plantillas por su texto fuente.
// Las variables no definidas se renderizan como cadena vacía y el HTML se escapa.
type Pongo2Renderer struct {
	cache *lru.Cache[string, *pongo2.Template]
	set   *pongo2.TemplateSet
}

// NewPongo2Renderer crea un renderer con su propio TemplateSet.
func NewPongo2Renderer() *Pongo2Renderer {
	return newRenderer(cacheSize)
}

func newRenderer(size int) *Pongo2Renderer {
	cache, err := lru.New[string, *pongo2.Template](size)
	if err != nil {
		panic(fmt.Sprintf("render: cache de plantillas: %v", err))
	}
	return &Pongo2Renderer{
		cache: cache,
		set:   pongo2.NewSet("email", pongo2.DefaultLoader),
	}
}

// Render sustituye vars en source.
func (r *Pongo2Renderer) Render(source string, vars map[string]any) (string, error) {
	tpl, err := r.compile(source)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// Validate compila source sin ejecutarla. No se cachea: las vistas previas de
// texto editado no deben desplazar a las plantillas en uso.
func (r *Pongo2Renderer) Validate(source string) error {
	if _, ok := r.cache.Get(source); ok {
		return nil
	}
	if _, err := r.set.FromString(source); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}

func (r *Pongo2Renderer) compile(source string) (*pongo2.Template, error) {
	if tpl, ok := r.cache.Get(source); ok {
		return tpl, nil
	}
	tpl, err := r.set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	r.cache.Add(source, tpl)
	return tpl, nil
}

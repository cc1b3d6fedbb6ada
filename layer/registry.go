// Package layer tracks the named visibility tags that committed entities are
// filed under.
//
// Layers do not own render targets. Entities record the id of the layer that
// was active when they were committed, and the rasterizer skips entities
// whose layer is hidden. Layers are never removed, so the registry always
// holds at least the default layer.
package layer

import (
	"fmt"
	"log/slog"
	"slices"
)

// Kind tags the entity type a layer logically groups.
type Kind uint8

// Layer kinds.
const (
	KindLine Kind = iota
	KindRectangle
	KindEllipse
	KindText
	KindImage
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// DefaultID is the id of the layer every registry starts with.
const DefaultID = "layer-1"

// Layer is one entry of the registry.
type Layer struct {
	ID      string
	Name    string
	Visible bool
	ZIndex  int
	Kind    Kind
}

// Registry is the ordered set of layers plus the active selection.
// A Registry is not safe for concurrent use.
type Registry struct {
	layers []Layer
	active string
	next   int
	logger *slog.Logger
}

// NewRegistry returns a registry holding only the default layer, which is
// active and visible.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{next: 1, logger: logger}
	r.Add()
	return r
}

// Add appends a visible line layer named "Layer N" with z-index N and makes
// it active. It returns the new layer.
func (r *Registry) Add() Layer {
	n := r.next
	r.next++
	l := Layer{
		ID:      fmt.Sprintf("layer-%d", n),
		Name:    fmt.Sprintf("Layer %d", n),
		Visible: true,
		ZIndex:  n,
		Kind:    KindLine,
	}
	r.layers = append(r.layers, l)
	r.active = l.ID
	return l
}

// Toggle flips the visibility of layer id and reports whether it exists.
func (r *Registry) Toggle(id string) bool {
	i := r.index(id)
	if i < 0 {
		r.logger.Debug("layer: toggle unknown id", "id", id)
		return false
	}
	r.layers[i].Visible = !r.layers[i].Visible
	return true
}

// SetActive selects layer id and reports whether it exists. Unknown ids
// leave the selection unchanged.
func (r *Registry) SetActive(id string) bool {
	if r.index(id) < 0 {
		r.logger.Debug("layer: activate unknown id", "id", id)
		return false
	}
	r.active = id
	return true
}

// Active returns the id of the active layer.
func (r *Registry) Active() string {
	return r.active
}

// Visible reports whether entities on layer id should be drawn. Entities
// with an unknown or empty layer id are always drawn.
func (r *Registry) Visible(id string) bool {
	i := r.index(id)
	return i < 0 || r.layers[i].Visible
}

// Get returns layer id.
func (r *Registry) Get(id string) (Layer, bool) {
	i := r.index(id)
	if i < 0 {
		return Layer{}, false
	}
	return r.layers[i], true
}

// Layers returns a copy of the layers in creation order.
func (r *Registry) Layers() []Layer {
	return slices.Clone(r.layers)
}

// Len returns the number of layers.
func (r *Registry) Len() int {
	return len(r.layers)
}

func (r *Registry) index(id string) int {
	return slices.IndexFunc(r.layers, func(l Layer) bool { return l.ID == id })
}

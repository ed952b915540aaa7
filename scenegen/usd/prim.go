package usd

import (
	"fmt"
	"sort"
	"strings"
)

// PrimKind is the schema type name written after `def`.
type PrimKind string

const (
	KindXform       PrimKind = "Xform"
	KindMesh        PrimKind = "Mesh"
	KindCamera      PrimKind = "Camera"
	KindSphereLight PrimKind = "SphereLight"
)

// ParsePrimKind maps a schema type name onto a known kind.
func ParsePrimKind(s string) (PrimKind, bool) {
	switch k := PrimKind(s); k {
	case KindXform, KindMesh, KindCamera, KindSphereLight:
		return k, true
	}
	return "", false
}

// Attribute is a typed property authored on a prim. Value holds one of
// []math.Vec3, math.Vec3, []int32, float32, bool or []string, matching TypeName.
type Attribute struct {
	Name     string
	TypeName string
	Uniform  bool
	Value    interface{}
}

// Prim is a node of the stage tree. Prims are created through Stage.DefinePrim.
type Prim struct {
	stage    *Stage
	path     string
	name     string
	kind     PrimKind
	attrs    map[string]Attribute
	ops      []XformOp
	children []*Prim
}

func newPrim(stage *Stage, path, name string, kind PrimKind) *Prim {
	return &Prim{
		stage: stage,
		path:  path,
		name:  name,
		kind:  kind,
		attrs: make(map[string]Attribute),
	}
}

func (p *Prim) Path() string { return p.path }
func (p *Prim) Name() string { return p.name }
func (p *Prim) Kind() PrimKind { return p.kind }
func (p *Prim) Children() []*Prim { return p.children }

// Attribute looks up an authored attribute by its full name.
func (p *Prim) Attribute(name string) (Attribute, bool) {
	a, ok := p.attrs[name]
	return a, ok
}

// Attributes returns every authored attribute in serialization order, the
// xformOpOrder token list included.
func (p *Prim) Attributes() []Attribute {
	out := make([]Attribute, 0, len(p.attrs)+len(p.ops)+1)
	for _, a := range p.attrs {
		out = append(out, a)
	}
	if len(p.ops) > 0 {
		order := make([]string, len(p.ops))
		for i, op := range p.ops {
			out = append(out, op.attribute())
			order[i] = op.Name()
		}
		out = append(out, Attribute{Name: "xformOpOrder", TypeName: "token[]", Uniform: true, Value: order})
	}
	sort.Slice(out, func(i, j int) bool {
		return propertyLess(out[i].Name, out[j].Name)
	})
	return out
}

func (p *Prim) setAttribute(a Attribute) error {
	if p.stage.sealed {
		return ErrStageSealed
	}
	p.attrs[a.Name] = a
	return nil
}

func (p *Prim) requireKind(kind PrimKind) error {
	if p.kind != kind {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrPrimKind, p.path, p.kind, kind)
	}
	return nil
}

// propertyLess orders names case-insensitively, falling back to byte order.
func propertyLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

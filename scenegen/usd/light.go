package usd

import (
	"github.com/spaghettifunk/usdfixtures/scenegen/math"
)

const (
	attrTreatAsPoint = "treatAsPoint"
	attrColor        = "inputs:color"
	attrIntensity    = "inputs:intensity"
	attrExposure     = "inputs:exposure"
)

// SetTreatAsPoint asks renderers to treat a sphere light as a zero-radius point.
func (p *Prim) SetTreatAsPoint(v bool) error {
	if err := p.requireKind(KindSphereLight); err != nil {
		return err
	}
	return p.setAttribute(Attribute{Name: attrTreatAsPoint, TypeName: "bool", Value: v})
}

func (p *Prim) SetColor(c math.Vec3) error {
	if err := p.requireKind(KindSphereLight); err != nil {
		return err
	}
	return p.setAttribute(Attribute{Name: attrColor, TypeName: "color3f", Value: c})
}

func (p *Prim) SetIntensity(v float32) error {
	if err := p.requireKind(KindSphereLight); err != nil {
		return err
	}
	return p.setAttribute(Attribute{Name: attrIntensity, TypeName: "float", Value: v})
}

func (p *Prim) SetExposure(v float32) error {
	if err := p.requireKind(KindSphereLight); err != nil {
		return err
	}
	return p.setAttribute(Attribute{Name: attrExposure, TypeName: "float", Value: v})
}

// TreatAsPoint reports the authored flag; unauthored means false.
func (p *Prim) TreatAsPoint() bool {
	a, ok := p.attrs[attrTreatAsPoint]
	if !ok {
		return false
	}
	return a.Value.(bool)
}

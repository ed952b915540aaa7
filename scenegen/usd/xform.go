package usd

import (
	"strconv"

	"github.com/spaghettifunk/usdfixtures/scenegen/math"
)

type OpType uint8

const (
	OpTranslate OpType = iota
	OpRotate
)

// XformOp is one entry of a prim's transform op stack.
type XformOp struct {
	Type        OpType
	Translation math.Vec3
	Axis        math.Axis
	// Angle is in degrees.
	Angle float32
	// suffix disambiguates repeated ops of the same kind, 0 for the first.
	suffix int
}

// Name is the attribute name the op is authored under, e.g. xformOp:rotateZ.
func (op XformOp) Name() string {
	var n string
	switch op.Type {
	case OpTranslate:
		n = "xformOp:translate"
	default:
		n = "xformOp:rotate" + op.Axis.String()
	}
	if op.suffix > 0 {
		n += ":" + strconv.Itoa(op.suffix)
	}
	return n
}

// Matrix returns the op as a row-vector transform.
func (op XformOp) Matrix() math.Mat4 {
	if op.Type == OpTranslate {
		return math.NewMat4Translation(op.Translation)
	}
	return math.NewMat4RotationDeg(op.Axis, op.Angle)
}

func (op XformOp) attribute() Attribute {
	if op.Type == OpTranslate {
		return Attribute{Name: op.Name(), TypeName: "double3", Value: op.Translation}
	}
	return Attribute{Name: op.Name(), TypeName: "float", Value: op.Angle}
}

// AddTranslateOp appends a translation to the op stack.
func (p *Prim) AddTranslateOp(v math.Vec3) error {
	return p.addOp(XformOp{Type: OpTranslate, Translation: v})
}

// AddRotateOp appends a rotation of degrees about axis to the op stack.
func (p *Prim) AddRotateOp(axis math.Axis, degrees float32) error {
	return p.addOp(XformOp{Type: OpRotate, Axis: axis, Angle: degrees})
}

func (p *Prim) addOp(op XformOp) error {
	if p.stage.sealed {
		return ErrStageSealed
	}
	for _, existing := range p.ops {
		if existing.Type == op.Type && (op.Type == OpTranslate || existing.Axis == op.Axis) {
			op.suffix++
		}
	}
	p.ops = append(p.ops, op)
	return nil
}

// XformOps returns the op stack in the order the ops were added.
func (p *Prim) XformOps() []XformOp {
	return append([]XformOp(nil), p.ops...)
}

// LocalTransform composes the op stack. Ops later in the stack are applied to
// points first, so [translate, rotateZ] rotates then translates.
func (p *Prim) LocalTransform() math.Mat4 {
	out := math.NewMat4Identity()
	for _, op := range p.ops {
		out = op.Matrix().Mul(out)
	}
	return out
}

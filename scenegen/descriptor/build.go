package descriptor

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spaghettifunk/usdfixtures/scenegen/math"
	"github.com/spaghettifunk/usdfixtures/scenegen/usd"
)

// Build writes the descriptor's layer into dir and returns its path.
func Build(d Descriptor, dir string) (string, error) {
	path := filepath.Join(dir, d.Output)
	stage, err := usd.CreateNew(path)
	if err != nil {
		return "", err
	}
	if err := d.Populate(stage); err != nil {
		return "", err
	}
	if err := stage.Save(); err != nil {
		return "", err
	}
	return path, nil
}

// Populate defines every prim of the descriptor on s, in file order.
func (d Descriptor) Populate(s *usd.Stage) error {
	for _, spec := range d.Prims {
		if err := spec.define(s); err != nil {
			return err
		}
	}
	return nil
}

func (spec PrimSpec) define(s *usd.Stage) error {
	kind, ok := usd.ParsePrimKind(spec.Kind)
	if !ok {
		return fmt.Errorf("%w: %s: unknown kind %q", ErrDescriptor, spec.Path, spec.Kind)
	}
	p, err := s.DefinePrim(spec.Path, kind)
	if err != nil {
		return err
	}

	if spec.Points == nil && (spec.FaceVertexCounts != nil || spec.FaceVertexIndices != nil || spec.Extent != nil) {
		return fmt.Errorf("%w: %s: mesh topology or extent given without points", ErrDescriptor, spec.Path)
	}
	if spec.Points != nil {
		g, err := spec.geometry()
		if err != nil {
			return err
		}
		if err := p.SetMeshGeometry(g); err != nil {
			return err
		}
	}
	if err := spec.applyLight(p); err != nil {
		return err
	}

	for _, op := range spec.Ops {
		if err := op.apply(p); err != nil {
			return fmt.Errorf("%s: %w", spec.Path, err)
		}
	}
	return nil
}

func (spec PrimSpec) geometry() (usd.MeshGeometry, error) {
	points, err := vec3s(spec.Points)
	if err != nil {
		return usd.MeshGeometry{}, fmt.Errorf("%s: points: %w", spec.Path, err)
	}
	g := usd.MeshGeometry{
		Points:            points,
		FaceVertexCounts:  spec.FaceVertexCounts,
		FaceVertexIndices: spec.FaceVertexIndices,
	}

	switch len(spec.Extent) {
	case 0:
		g.Extent = math.NewExtents3DFromPoints(points)
	case 2:
		corners, err := vec3s(spec.Extent)
		if err != nil {
			return usd.MeshGeometry{}, fmt.Errorf("%s: extent: %w", spec.Path, err)
		}
		g.Extent = math.Extents3D{Min: corners[0], Max: corners[1]}
	default:
		return usd.MeshGeometry{}, fmt.Errorf("%w: %s: extent needs exactly two corners", ErrDescriptor, spec.Path)
	}
	return g, nil
}

func (spec PrimSpec) applyLight(p *usd.Prim) error {
	if spec.TreatAsPoint != nil {
		if err := p.SetTreatAsPoint(*spec.TreatAsPoint); err != nil {
			return err
		}
	}
	if spec.Color != nil {
		c, err := vec3(spec.Color)
		if err != nil {
			return fmt.Errorf("%s: color: %w", spec.Path, err)
		}
		if err := p.SetColor(c); err != nil {
			return err
		}
	}
	if spec.Intensity != nil {
		if err := p.SetIntensity(*spec.Intensity); err != nil {
			return err
		}
	}
	if spec.Exposure != nil {
		if err := p.SetExposure(*spec.Exposure); err != nil {
			return err
		}
	}
	return nil
}

func (op OpSpec) apply(p *usd.Prim) error {
	switch op.Op {
	case "translate":
		v, err := vec3(op.Value)
		if err != nil {
			return fmt.Errorf("translate: %w", err)
		}
		return p.AddTranslateOp(v)
	case "rotateX":
		return p.AddRotateOp(math.AxisX, op.Angle)
	case "rotateY":
		return p.AddRotateOp(math.AxisY, op.Angle)
	case "rotateZ":
		return p.AddRotateOp(math.AxisZ, op.Angle)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrDescriptor, op.Op)
	}
}

func vec3(c []float32) (math.Vec3, error) {
	if len(c) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: expected 3 components, got %d", ErrDescriptor, len(c))
	}
	return math.NewVec3(c[0], c[1], c[2]), nil
}

func vec3s(cs [][]float32) ([]math.Vec3, error) {
	out := make([]math.Vec3, len(cs))
	for i, c := range cs {
		v, err := vec3(c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// BuildDir builds every descriptor found under dir, recursively, into
// outputDir. Files are visited in lexical order so output is stable.
func BuildDir(dir, outputDir string) ([]string, error) {
	var written []string
	err := filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !IsDescriptorFile(path) {
			return nil
		}
		d, err := Load(path)
		if err != nil {
			return err
		}
		out, err := Build(d, outputDir)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		written = append(written, out)
		return nil
	})
	return written, err
}

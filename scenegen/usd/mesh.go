package usd

import (
	"github.com/spaghettifunk/usdfixtures/scenegen/core"
	"github.com/spaghettifunk/usdfixtures/scenegen/math"
)

const (
	attrPoints            = "points"
	attrFaceVertexCounts  = "faceVertexCounts"
	attrFaceVertexIndices = "faceVertexIndices"
	attrExtent            = "extent"
)

// MeshGeometry is the literal topology of a polygon mesh. The sum of
// FaceVertexCounts is expected to equal len(FaceVertexIndices) and every index
// to address Points; neither is checked.
type MeshGeometry struct {
	Points            []math.Vec3
	FaceVertexCounts  []int32
	FaceVertexIndices []int32
	Extent            math.Extents3D
}

// SetMeshGeometry authors points, faceVertexCounts, faceVertexIndices and
// extent on a Mesh prim. The slices are copied.
func (p *Prim) SetMeshGeometry(g MeshGeometry) error {
	if err := p.requireKind(KindMesh); err != nil {
		return err
	}
	attrs := []Attribute{
		{Name: attrPoints, TypeName: "point3f[]", Value: append([]math.Vec3(nil), g.Points...)},
		{Name: attrFaceVertexCounts, TypeName: "int[]", Value: append([]int32(nil), g.FaceVertexCounts...)},
		{Name: attrFaceVertexIndices, TypeName: "int[]", Value: append([]int32(nil), g.FaceVertexIndices...)},
		{Name: attrExtent, TypeName: "float3[]", Value: []math.Vec3{g.Extent.Min, g.Extent.Max}},
	}
	for _, a := range attrs {
		if err := p.setAttribute(a); err != nil {
			return err
		}
	}
	core.LogDebug("%s: %d points, %d faces, %d face vertices (%d indices)",
		p.path, len(g.Points), len(g.FaceVertexCounts), math.Sum(g.FaceVertexCounts), len(g.FaceVertexIndices))
	return nil
}

// MeshGeometry reads back the geometry authored by SetMeshGeometry. The
// boolean is false when the prim is not a mesh or has no points.
func (p *Prim) MeshGeometry() (MeshGeometry, bool) {
	if p.kind != KindMesh {
		return MeshGeometry{}, false
	}
	points, ok := p.attrs[attrPoints]
	if !ok {
		return MeshGeometry{}, false
	}
	g := MeshGeometry{Points: points.Value.([]math.Vec3)}
	if a, ok := p.attrs[attrFaceVertexCounts]; ok {
		g.FaceVertexCounts = a.Value.([]int32)
	}
	if a, ok := p.attrs[attrFaceVertexIndices]; ok {
		g.FaceVertexIndices = a.Value.([]int32)
	}
	if a, ok := p.attrs[attrExtent]; ok {
		corners := a.Value.([]math.Vec3)
		g.Extent = math.Extents3D{Min: corners[0], Max: corners[1]}
	}
	return g, true
}

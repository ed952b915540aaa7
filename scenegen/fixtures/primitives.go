package fixtures

import (
	"github.com/spaghettifunk/usdfixtures/scenegen/math"
	"github.com/spaghettifunk/usdfixtures/scenegen/usd"
)

// triangleGeometry is a single tilted triangle inside a 4-unit cube.
func triangleGeometry() usd.MeshGeometry {
	return usd.MeshGeometry{
		Points: []math.Vec3{
			math.NewVec3(-1, -1, -1),
			math.NewVec3(-1, 1, 1),
			math.NewVec3(1, -1, 1),
		},
		FaceVertexCounts:  []int32{3},
		FaceVertexIndices: []int32{0, 1, 2},
		Extent:            math.NewExtents3DCube(2),
	}
}

// squareGeometry is a 6x6 quad on the z=0 plane.
func squareGeometry() usd.MeshGeometry {
	return usd.MeshGeometry{
		Points: []math.Vec3{
			math.NewVec3(-3, -3, 0),
			math.NewVec3(-3, 3, 0),
			math.NewVec3(3, 3, 0),
			math.NewVec3(3, -3, 0),
		},
		FaceVertexCounts:  []int32{4},
		FaceVertexIndices: []int32{0, 1, 2, 3},
		Extent:            math.NewExtents3DCube(5),
	}
}

// tetrahedronGeometry builds a regular tetrahedron from alternate corners of
// the unit cube; mirrored selects the other four corners.
func tetrahedronGeometry(mirrored bool) usd.MeshGeometry {
	points := []math.Vec3{
		math.NewVec3(1, 1, 1),
		math.NewVec3(-1, -1, 1),
		math.NewVec3(-1, 1, -1),
		math.NewVec3(1, -1, -1),
	}
	if mirrored {
		points = []math.Vec3{
			math.NewVec3(-1, 1, 1),
			math.NewVec3(1, -1, 1),
			math.NewVec3(1, 1, -1),
			math.NewVec3(-1, -1, -1),
		}
	}
	return usd.MeshGeometry{
		Points:            points,
		FaceVertexCounts:  []int32{3, 3, 3, 3},
		FaceVertexIndices: []int32{0, 1, 2, 0, 1, 3, 0, 2, 3, 1, 2, 3},
		Extent:            math.NewExtents3DCube(2),
	}
}

func defineMesh(s *usd.Stage, path string, g usd.MeshGeometry) (*usd.Prim, error) {
	p, err := s.DefinePrim(path, usd.KindMesh)
	if err != nil {
		return nil, err
	}
	if err := p.SetMeshGeometry(g); err != nil {
		return nil, err
	}
	return p, nil
}

func addTriangle(s *usd.Stage) error {
	if _, err := s.DefinePrim("/basic", usd.KindXform); err != nil {
		return err
	}
	_, err := defineMesh(s, "/basic/triangle", triangleGeometry())
	return err
}

// addStellaOctangula adds two interpenetrating tetrahedra under /basic.
func addStellaOctangula(s *usd.Stage) error {
	if _, err := s.DefinePrim("/basic", usd.KindXform); err != nil {
		return err
	}
	if _, err := defineMesh(s, "/basic/tetra1", tetrahedronGeometry(false)); err != nil {
		return err
	}
	_, err := defineMesh(s, "/basic/tetra2", tetrahedronGeometry(true))
	return err
}

// addBackdrop adds the square backdrop, optionally pushed one unit back and
// turned 45 degrees about Z.
func addBackdrop(s *usd.Stage, offset bool) error {
	if _, err := s.DefinePrim("/backdrop", usd.KindXform); err != nil {
		return err
	}
	square, err := defineMesh(s, "/backdrop/square", squareGeometry())
	if err != nil {
		return err
	}
	if !offset {
		return nil
	}
	if err := square.AddTranslateOp(math.NewVec3(0, 0, -1)); err != nil {
		return err
	}
	return square.AddRotateOp(math.AxisZ, 45)
}

// addCamera places /camera1 above and behind the origin, pitched down 45 degrees.
func addCamera(s *usd.Stage) error {
	cam, err := s.DefinePrim("/camera1", usd.KindCamera)
	if err != nil {
		return err
	}
	if err := cam.AddTranslateOp(math.NewVec3(0, -12, 12)); err != nil {
		return err
	}
	return cam.AddRotateOp(math.AxisX, 45)
}

func addPointLight(s *usd.Stage) error {
	light, err := s.DefinePrim("/pointlight", usd.KindSphereLight)
	if err != nil {
		return err
	}
	if err := light.SetTreatAsPoint(true); err != nil {
		return err
	}
	return light.AddTranslateOp(math.NewVec3(-5, 5, 5))
}

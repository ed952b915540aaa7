package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/usdfixtures/scenegen/math"
	"github.com/spaghettifunk/usdfixtures/scenegen/usd"
)

func populate(t *testing.T, name string) *usd.Stage {
	t.Helper()
	f, ok := Lookup(name)
	if !ok {
		t.Fatalf("unknown fixture %s", name)
	}
	s, err := usd.CreateNew(filepath.Join(t.TempDir(), f.File))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Populate(s); err != nil {
		t.Fatal(err)
	}
	return s
}

func meshAt(t *testing.T, s *usd.Stage, path string) usd.MeshGeometry {
	t.Helper()
	p := s.PrimAtPath(path)
	if p == nil {
		t.Fatalf("%s is not defined", path)
	}
	g, ok := p.MeshGeometry()
	if !ok {
		t.Fatalf("%s has no mesh geometry", path)
	}
	return g
}

func equalInts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTriangle(t *testing.T) {
	g := meshAt(t, populate(t, "triangle"), "/basic/triangle")
	if len(g.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(g.Points))
	}
	if !equalInts(g.FaceVertexCounts, []int32{3}) || !equalInts(g.FaceVertexIndices, []int32{0, 1, 2}) {
		t.Errorf("unexpected topology %v %v", g.FaceVertexCounts, g.FaceVertexIndices)
	}
	if g.Extent.Min != math.NewVec3Splat(-2) || g.Extent.Max != math.NewVec3Splat(2) {
		t.Errorf("unexpected extent %+v", g.Extent)
	}
}

func TestBackdrop(t *testing.T) {
	s := populate(t, "triangle_w_backdrop")
	g := meshAt(t, s, "/backdrop/square")
	if len(g.Points) != 4 {
		t.Errorf("expected 4 points, got %d", len(g.Points))
	}
	if !equalInts(g.FaceVertexCounts, []int32{4}) || !equalInts(g.FaceVertexIndices, []int32{0, 1, 2, 3}) {
		t.Errorf("unexpected topology %v %v", g.FaceVertexCounts, g.FaceVertexIndices)
	}
	if g.Extent.Min != math.NewVec3Splat(-5) || g.Extent.Max != math.NewVec3Splat(5) {
		t.Errorf("unexpected extent %+v", g.Extent)
	}
	if ops := s.PrimAtPath("/backdrop/square").XformOps(); len(ops) != 0 {
		t.Errorf("plain backdrop has no ops, got %d", len(ops))
	}
}

func TestOffsetBackdrop(t *testing.T) {
	for _, name := range []string{"triangle_w_offset_backdrop", "triangle_w_offset_backdrop_w_camera_w_light", "stocta_w_offset_backdrop"} {
		ops := populate(t, name).PrimAtPath("/backdrop/square").XformOps()
		if len(ops) != 2 {
			t.Fatalf("%s: expected 2 ops, got %d", name, len(ops))
		}
		if ops[0].Type != usd.OpTranslate || ops[0].Translation != math.NewVec3(0, 0, -1) {
			t.Errorf("%s: first op should translate by (0,0,-1), got %+v", name, ops[0])
		}
		if ops[1].Type != usd.OpRotate || ops[1].Axis != math.AxisZ || ops[1].Angle != 45 {
			t.Errorf("%s: second op should rotate Z by 45, got %+v", name, ops[1])
		}
	}
}

func TestCameraAndLight(t *testing.T) {
	s := populate(t, "triangle_w_offset_backdrop_w_camera_w_light")

	cam := s.PrimAtPath("/camera1")
	if cam == nil || cam.Kind() != usd.KindCamera {
		t.Fatalf("expected a camera at /camera1, got %+v", cam)
	}
	ops := cam.XformOps()
	if len(ops) != 2 || ops[0].Translation != math.NewVec3(0, -12, 12) || ops[1].Axis != math.AxisX || ops[1].Angle != 45 {
		t.Errorf("unexpected camera ops %+v", ops)
	}

	light := s.PrimAtPath("/pointlight")
	if light == nil || light.Kind() != usd.KindSphereLight {
		t.Fatalf("expected a sphere light at /pointlight, got %+v", light)
	}
	if !light.TreatAsPoint() {
		t.Error("expected treatAsPoint")
	}
	ops = light.XformOps()
	if len(ops) != 1 || ops[0].Type != usd.OpTranslate || ops[0].Translation != math.NewVec3(-5, 5, 5) {
		t.Errorf("unexpected light ops %+v", ops)
	}
}

func TestStellaOctangulaTopology(t *testing.T) {
	s := populate(t, "stocta_w_offset_backdrop")
	for _, path := range []string{"/basic/tetra1", "/basic/tetra2"} {
		g := meshAt(t, s, path)
		if math.Sum(g.FaceVertexCounts) != int32(len(g.FaceVertexIndices)) {
			t.Errorf("%s: face vertex counts do not cover the index list", path)
		}
		for _, idx := range g.FaceVertexIndices {
			if int(idx) >= len(g.Points) {
				t.Errorf("%s: index %d out of range", path, idx)
			}
		}
		for _, p := range g.Points {
			if !g.Extent.Contains(p) {
				t.Errorf("%s: point %v outside extent", path, p)
			}
		}
	}
}

func TestGenerateWritesEveryFixtureDeterministically(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	a, err := Generate(first)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(second); err != nil {
		t.Fatal(err)
	}
	if len(a) != len(All()) {
		t.Fatalf("expected %d files, got %d", len(All()), len(a))
	}
	for _, f := range All() {
		x, err := os.ReadFile(filepath.Join(first, f.File))
		if err != nil {
			t.Fatal(err)
		}
		y, err := os.ReadFile(filepath.Join(second, f.File))
		if err != nil {
			t.Fatal(err)
		}
		if string(x) != string(y) {
			t.Errorf("%s differs between runs", f.File)
		}
	}

	// regenerating over existing layers is allowed
	if _, err := Generate(first); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
}

func TestCameraLightLayer(t *testing.T) {
	f, _ := Lookup("triangle_w_offset_backdrop_w_camera_w_light")
	path, err := f.Write(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := `#usda 1.0

def Xform "basic"
{
    def Mesh "triangle"
    {
        float3[] extent = [(-2, -2, -2), (2, 2, 2)]
        int[] faceVertexCounts = [3]
        int[] faceVertexIndices = [0, 1, 2]
        point3f[] points = [(-1, -1, -1), (-1, 1, 1), (1, -1, 1)]
    }
}

def Xform "backdrop"
{
    def Mesh "square"
    {
        float3[] extent = [(-5, -5, -5), (5, 5, 5)]
        int[] faceVertexCounts = [4]
        int[] faceVertexIndices = [0, 1, 2, 3]
        point3f[] points = [(-3, -3, 0), (-3, 3, 0), (3, 3, 0), (3, -3, 0)]
        float xformOp:rotateZ = 45
        double3 xformOp:translate = (0, 0, -1)
        uniform token[] xformOpOrder = ["xformOp:translate", "xformOp:rotateZ"]
    }
}

def Camera "camera1"
{
    float xformOp:rotateX = 45
    double3 xformOp:translate = (0, -12, 12)
    uniform token[] xformOpOrder = ["xformOp:translate", "xformOp:rotateX"]
}

def SphereLight "pointlight"
{
    bool treatAsPoint = 1
    double3 xformOp:translate = (-5, 5, 5)
    uniform token[] xformOpOrder = ["xformOp:translate"]
}

`
	if string(got) != want {
		t.Fatalf("unexpected layer:\n%s\nwant:\n%s", got, want)
	}
}

package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/usdfixtures/scenegen/fixtures"
	"github.com/spaghettifunk/usdfixtures/scenegen/math"
	"github.com/spaghettifunk/usdfixtures/scenegen/usd"
)

func builtinLayer(t *testing.T, name string) []byte {
	t.Helper()
	f, ok := fixtures.Lookup(name)
	if !ok {
		t.Fatalf("unknown fixture %s", name)
	}
	path, err := f.Write(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDescriptorsMatchBuiltinFixture(t *testing.T) {
	want := builtinLayer(t, "triangle_w_offset_backdrop_w_camera_w_light")

	for _, file := range []string{"testdata/toscl.toml", "testdata/toscl.yaml"} {
		d, err := Load(file)
		if err != nil {
			t.Fatalf("Load(%s): %v", file, err)
		}
		path, err := Build(d, t.TempDir())
		if err != nil {
			t.Fatalf("Build(%s): %v", file, err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(want) {
			t.Errorf("%s: layer differs from the built-in fixture:\n%s\nwant:\n%s", file, got, want)
		}
	}
}

func writeDescriptor(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown toml key", "a.toml", "output = \"a.usda\"\ncolour = 1\n"},
		{"unknown yaml key", "a.yaml", "output: a.usda\nprim: []\n"},
		{"missing output", "a.toml", "[[prims]]\npath = \"/a\"\nkind = \"Xform\"\n"},
		{"output with directory", "a.yaml", "output: ../a.usda\n"},
		{"output not a layer", "a.yaml", "output: a.obj\n"},
		{"bad syntax", "a.toml", "output = \n"},
		{"unsupported extension", "a.json", "{}"},
	}
	for _, tt := range tests {
		_, err := Load(writeDescriptor(t, tt.file, tt.body))
		if !errors.Is(err, ErrDescriptor) {
			t.Errorf("%s: expected ErrDescriptor, got %v", tt.name, err)
		}
	}
}

func TestPopulateErrors(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want error
	}{
		{"unknown kind", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Sphere"}}}, ErrDescriptor},
		{"unknown op", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Xform", Ops: []OpSpec{{Op: "scale"}}}}}, ErrDescriptor},
		{"short vector", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Xform", Ops: []OpSpec{{Op: "translate", Value: []float32{1, 2}}}}}}, ErrDescriptor},
		{"three extent corners", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Mesh", Points: [][]float32{{0, 0, 0}}, Extent: [][]float32{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}}}}, ErrDescriptor},
		{"topology without points", Descriptor{Prims: []PrimSpec{{Path: "/m", Kind: "Mesh", FaceVertexCounts: []int32{3}, FaceVertexIndices: []int32{0, 1, 2}}}}, ErrDescriptor},
		{"extent without points", Descriptor{Prims: []PrimSpec{{Path: "/m", Kind: "Mesh", Extent: [][]float32{{0, 0, 0}, {1, 1, 1}}}}}, ErrDescriptor},
		{"duplicate path", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Xform"}, {Path: "/a", Kind: "Xform"}}}, usd.ErrPrimPath},
		{"light flag on mesh", Descriptor{Prims: []PrimSpec{{Path: "/a", Kind: "Mesh", TreatAsPoint: new(bool)}}}, usd.ErrPrimKind},
	}
	for _, tt := range tests {
		s, err := usd.CreateNew(filepath.Join(t.TempDir(), "x.usda"))
		if err != nil {
			t.Fatal(err)
		}
		if err := tt.d.Populate(s); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestExtentDefaultsToPointBounds(t *testing.T) {
	path := writeDescriptor(t, "tetra.yaml", `
output: tetra.usda
prims:
  - path: /tetra
    kind: Mesh
    points: [[1, 1, 1], [-1, -1, 1], [-1, 1, -1], [1, -1, -1]]
    face_vertex_counts: [3, 3, 3, 3]
    face_vertex_indices: [0, 1, 2, 0, 1, 3, 0, 2, 3, 1, 2, 3]
  - path: /light
    kind: SphereLight
    intensity: 3
    exposure: 0.5
    color: [1, 1, 0.5]
`)
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := usd.CreateNew(filepath.Join(t.TempDir(), d.Output))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Populate(s); err != nil {
		t.Fatal(err)
	}

	g, ok := s.PrimAtPath("/tetra").MeshGeometry()
	if !ok {
		t.Fatal("expected mesh geometry")
	}
	if g.Extent.Min != math.NewVec3Splat(-1) || g.Extent.Max != math.NewVec3Splat(1) {
		t.Errorf("unexpected extent %+v", g.Extent)
	}

	light := s.PrimAtPath("/light")
	for name, want := range map[string]interface{}{
		"inputs:intensity": float32(3),
		"inputs:exposure":  float32(0.5),
		"inputs:color":     math.NewVec3(1, 1, 0.5),
	} {
		a, ok := light.Attribute(name)
		if !ok || a.Value != want {
			t.Errorf("%s: expected %v, got %+v", name, want, a)
		}
	}
}

func TestIsDescriptorFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.toml": true, "a.YAML": true, "b.yml": true, "c.usda": false, "d": false,
	} {
		if got := IsDescriptorFile(path); got != want {
			t.Errorf("IsDescriptorFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestBuildDir(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	nested := filepath.Join(src, "nested")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	for path, body := range map[string]string{
		filepath.Join(src, "a.yaml"):    "output: a.usda\nprims:\n  - path: /a\n    kind: Xform\n",
		filepath.Join(nested, "b.toml"): "output = \"b.usda\"\n",
		filepath.Join(src, "notes.txt"): "ignored",
		filepath.Join(nested, "c.usda"): "#usda 1.0\n",
	} {
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	written, err := BuildDir(src, out)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(out, "a.usda"), filepath.Join(out, "b.usda")}
	if len(written) != len(want) || written[0] != want[0] || written[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, written)
	}
}

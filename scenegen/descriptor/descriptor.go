// Package descriptor builds fixtures from declarative TOML or YAML files, so
// new scenes can be added without writing Go.
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrDescriptor = errors.New("invalid fixture descriptor")

// Descriptor is the decoded form of one fixture file.
type Descriptor struct {
	// Output is the layer file name, relative to the output directory.
	Output string     `toml:"output" yaml:"output"`
	Prims  []PrimSpec `toml:"prims" yaml:"prims"`
}

// PrimSpec declares one prim. Geometry fields apply to meshes, light fields
// to sphere lights; Ops apply to any kind.
type PrimSpec struct {
	Path              string      `toml:"path" yaml:"path"`
	Kind              string      `toml:"kind" yaml:"kind"`
	Points            [][]float32 `toml:"points" yaml:"points"`
	FaceVertexCounts  []int32     `toml:"face_vertex_counts" yaml:"face_vertex_counts"`
	FaceVertexIndices []int32     `toml:"face_vertex_indices" yaml:"face_vertex_indices"`
	Extent            [][]float32 `toml:"extent" yaml:"extent"`
	Ops               []OpSpec    `toml:"ops" yaml:"ops"`
	TreatAsPoint      *bool       `toml:"treat_as_point" yaml:"treat_as_point"`
	Color             []float32   `toml:"color" yaml:"color"`
	Intensity         *float32    `toml:"intensity" yaml:"intensity"`
	Exposure          *float32    `toml:"exposure" yaml:"exposure"`
}

// OpSpec is a transform op: "translate" uses Value, "rotateX", "rotateY" and
// "rotateZ" use Angle in degrees.
type OpSpec struct {
	Op    string    `toml:"op" yaml:"op"`
	Value []float32 `toml:"value" yaml:"value"`
	Angle float32   `toml:"angle" yaml:"angle"`
}

// IsDescriptorFile reports whether path has an extension Load understands.
func IsDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a descriptor, choosing the decoder from the file extension.
// Unknown keys are rejected.
func Load(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, err
	}

	var d Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&d)
	default:
		return Descriptor{}, fmt.Errorf("%w: %s: unsupported extension", ErrDescriptor, path)
	}
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %v", ErrDescriptor, path, err)
	}
	if err := d.validate(); err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d Descriptor) validate() error {
	if d.Output == "" {
		return fmt.Errorf("%w: output is required", ErrDescriptor)
	}
	if filepath.Base(d.Output) != d.Output || filepath.Ext(d.Output) != ".usda" {
		return fmt.Errorf("%w: output %q must be a bare .usda file name", ErrDescriptor, d.Output)
	}
	return nil
}

package fixtures

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/usdfixtures/scenegen/core"
	"github.com/spaghettifunk/usdfixtures/scenegen/usd"
)

// Fixture is one generated scene: a stable name, the file it is written to,
// and the steps that populate the stage.
type Fixture struct {
	Name  string
	File  string
	steps []func(*usd.Stage) error
}

var builtins = []Fixture{
	{
		Name:  "triangle",
		File:  "t.usda",
		steps: []func(*usd.Stage) error{addTriangle},
	},
	{
		Name:  "triangle_w_backdrop",
		File:  "ts.usda",
		steps: []func(*usd.Stage) error{addTriangle, backdrop},
	},
	{
		Name:  "triangle_w_offset_backdrop",
		File:  "tos.usda",
		steps: []func(*usd.Stage) error{addTriangle, offsetBackdrop},
	},
	{
		Name:  "triangle_w_offset_backdrop_w_camera_w_light",
		File:  "toscl.usda",
		steps: []func(*usd.Stage) error{addTriangle, offsetBackdrop, addCamera, addPointLight},
	},
	{
		Name:  "stocta_w_offset_backdrop",
		File:  "stocta_w_offset_backdrop.usda",
		steps: []func(*usd.Stage) error{addStellaOctangula, offsetBackdrop},
	},
}

func backdrop(s *usd.Stage) error { return addBackdrop(s, false) }
func offsetBackdrop(s *usd.Stage) error { return addBackdrop(s, true) }

// All returns the built-in fixtures in generation order.
func All() []Fixture {
	return append([]Fixture(nil), builtins...)
}

// Lookup finds a built-in fixture by name.
func Lookup(name string) (Fixture, bool) {
	for _, f := range builtins {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

// Populate runs the fixture's steps against an unsaved stage.
func (f Fixture) Populate(s *usd.Stage) error {
	for _, step := range f.steps {
		if err := step(s); err != nil {
			return fmt.Errorf("fixture %s: %w", f.Name, err)
		}
	}
	return nil
}

// Write builds the fixture into dir and returns the path of the saved layer.
func (f Fixture) Write(dir string) (string, error) {
	path := filepath.Join(dir, f.File)
	stage, err := usd.CreateNew(path)
	if err != nil {
		return "", err
	}
	if err := f.Populate(stage); err != nil {
		return "", err
	}
	if err := stage.Save(); err != nil {
		return "", err
	}
	return path, nil
}

// Generate writes every built-in fixture into dir, stopping at the first error.
func Generate(dir string) ([]string, error) {
	clock := core.NewClock()
	clock.Start()
	defer func() {
		clock.Stop()
		core.LogDebug("fixture generation took %s", clock.Elapsed())
	}()

	written := make([]string, 0, len(builtins))
	for _, f := range builtins {
		path, err := f.Write(dir)
		if err != nil {
			return written, err
		}
		core.LogInfo("wrote fixture %s to %s", f.Name, path)
		written = append(written, path)
	}
	return written, nil
}

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the generator into bin/usdfixtures.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/usdfixtures", "."), withEnv("CGO_ENABLED=0"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the unit tests of every package.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

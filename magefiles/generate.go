//go:build mage

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/spaghettifunk/usdfixtures/scenegen/fixtures"
)

type Generate mg.Namespace

// Writes every built-in fixture into the given directory.
func (Generate) Fixtures(dir string) error {
	mg.Deps(Build.Binary)
	abs, err := filepath.Abs("bin/usdfixtures")
	if err != nil {
		return err
	}
	fmt.Println("Generating fixtures...")
	if _, err := executeCmd(abs, withDir(dir), withStream()); err != nil {
		return err
	}
	return nil
}

// Removes the built-in fixture layers from the given directory.
func (Generate) Clean(dir string) error {
	for _, f := range fixtures.All() {
		path := filepath.Join(dir, f.File)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if mg.Verbose() {
			fmt.Printf("removed %s\n", path)
		}
	}
	return nil
}

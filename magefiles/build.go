//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the viewer binary.
func (Build) Viewer() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "rabbitview", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet and the test suite.
func (Build) Check() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

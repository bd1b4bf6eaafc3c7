//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build compiles the jtol binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/jtol", "./cmd/jtol")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet across the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs lint then the tests.
func QA() error {
	mg.Deps(Lint)
	return Test()
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}

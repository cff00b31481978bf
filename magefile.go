//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the phonobridge and buildtok binaries into bin/
func Build() error {
	mg.Deps(Vet)
	if err := sh.Run("go", "build", "-o", "bin/phonobridge", "./cmd/phonobridge"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", "bin/buildtok", "./cmd/buildtok")
}

// Test runs the full test suite
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the whole module
func Vet() error {
	return sh.Run("go", "vet", "./...")
}

// Install installs both binaries
func Install() error {
	if err := sh.Run("go", "install", "./cmd/phonobridge"); err != nil {
		return err
	}
	return sh.Run("go", "install", "./cmd/buildtok")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Removing bin/")
	return sh.Rm("bin")
}

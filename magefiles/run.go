//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and opens the triangle window.
func (Run) Triangle() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run hellotriangle...")
	if _, err := executeCmd("bin/hellotriangle", withStream()); err != nil {
		return err
	}
	return nil
}

//go:build !opencl

package main

import (
	"errors"
	"testing"
)

func TestOpenCLDisabled(t *testing.T) {
	if _, err := newOpenCLSolver(false, 2); !errors.Is(err, errOpenCLDisabled) {
		t.Errorf("newOpenCLSolver = %v, want errOpenCLDisabled", err)
	}
}

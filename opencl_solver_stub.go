//go:build !opencl

package main

import "errors"

var errOpenCLDisabled = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

type openCLSolver struct{}

func newOpenCLSolver(_ bool, _ int) (*openCLSolver, error) {
	return nil, errOpenCLDisabled
}

func (s *openCLSolver) Resize(int, int, *labelTexture) error { return errOpenCLDisabled }

func (s *openCLSolver) Simulate(stepInput) error { return errOpenCLDisabled }

func (s *openCLSolver) Composite([]byte) error { return errOpenCLDisabled }

func (s *openCLSolver) Swap() {}

func (s *openCLSolver) Reset() {}

func (s *openCLSolver) Name() string { return "opencl (disabled)" }

func (s *openCLSolver) Close() {}

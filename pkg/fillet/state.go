package fillet

import (
	"fmt"

	"github.com/chazu/lignin/pkg/brep"
	"github.com/chazu/lignin/pkg/identity"
	"github.com/chazu/lignin/pkg/kernelerr"
)

// state names the fillet chain's state machine (spec.md §4.F):
//
//	(idle) -> [validate] -> (validated) -> [build_surfaces] -> (geometry_built)
//	       -> [trim_faces]  -> (faces_trimmed)
//	       -> [weld_identities] -> (shell_repaired)
//	       -> [check_closure] -> (committed | rolled_back)
type state int

const (
	idle state = iota
	validated
	geometryBuilt
	facesTrimmed
	shellRepaired
	committed
	rolledBack
)

func (s state) String() string {
	switch s {
	case idle:
		return "idle"
	case validated:
		return "validated"
	case geometryBuilt:
		return "geometry_built"
	case facesTrimmed:
		return "faces_trimmed"
	case shellRepaired:
		return "shell_repaired"
	case committed:
		return "committed"
	case rolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// chain carries one fillet-chain operation's working state through the
// machine above. original is returned unchanged whenever a step fails or
// check_closure rejects the result (spec.md §4.F "each leaves the input
// shell unchanged").
type chain struct {
	original *brep.Shell
	opts     FilletOptions
	edges    []*brep.Edge
	closed   bool

	state        state
	specs        []edgeFilletSpec
	built        []builtFillet
	trimmedFaces map[identity.Token]*brep.Face
	next         *brep.Shell
}

// Run drives the chain through every state in order, converting any
// panic raised by the geometry steps into a ConvergenceFailure the same
// way a fresh sandboxed evaluation turns a runtime panic into a returned
// error rather than crashing the caller.
func (c *chain) Run() (result *brep.Shell, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = c.original
			err = &kernelerr.ConvergenceFailure{Op: fmt.Sprintf("fillet(%s)", c.state), Iter: 0}
		}
	}()

	if err := c.validate(); err != nil {
		c.state = rolledBack
		return c.original, err
	}
	c.state = validated

	if err := c.buildSurfaces(); err != nil {
		c.state = rolledBack
		return c.original, err
	}
	c.state = geometryBuilt

	if err := c.trimFaces(); err != nil {
		c.state = rolledBack
		return c.original, err
	}
	c.state = facesTrimmed

	if err := c.weldIdentities(); err != nil {
		c.state = rolledBack
		return c.original, err
	}
	c.state = shellRepaired

	if err := c.checkClosure(); err != nil {
		c.state = rolledBack
		return c.original, err
	}
	c.state = committed
	return c.next, nil
}

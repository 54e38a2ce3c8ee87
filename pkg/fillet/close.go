package fillet

import (
	"github.com/chazu/lignin/pkg/kernelerr"
	"github.com/chazu/lignin/pkg/topology"
)

// checkClosure implements the [check_closure] transition (spec.md §4.F):
// the repaired shell must still be manifold — every rail edge introduced
// by weldIdentities is used by exactly one trimmed/original face and one
// new fillet face by construction, so a Disconnected result here means a
// bug upstream rather than a geometrically bad input, but the operation
// still reports it as a failure and rolls back rather than returning a
// broken shell.
func (c *chain) checkClosure() error {
	if c.next.Condition() == topology.Disconnected {
		return &kernelerr.TopologyViolation{Reason: "fillet result is non-manifold after welding"}
	}
	return nil
}

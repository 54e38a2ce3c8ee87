package exprfn

import (
	"fmt"
	"sync"
	"time"
)

// waitWithTimeout waits for a result from ch, but returns a timeout error
// if the evaluation exceeds EvalTimeout. It uses a generation counter to
// discard the result of a call once a newer call has started.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (float64, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return 0, fmt.Errorf("exprfn: evaluation superseded by newer request")
		}
		return res.value, res.err

	case <-timer.C:
		return 0, fmt.Errorf("exprfn: evaluation timed out after %s", EvalTimeout)
	}
}

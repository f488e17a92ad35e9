package estimator

import (
	"runtime"
	"sync"

	"github.com/devmotion/mcmcdiag/chains"
	"github.com/devmotion/mcmcdiag/internal/autocov"
)

func clampWorkers(workers, params int) int {
	if workers <= 0 {
		workers = 1
	}
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	if workers > params {
		workers = params
	}
	return workers
}

// runParallel fans the parameter axis out over workers. Each worker
// builds its own workspace once, so cache construction is amortized per
// worker rather than per parameter, and no scratch state is shared.
func runParallel(arr *chains.Array, backend autocov.Backend, cfg Config, workers int, res *Result) error {
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			ws, err := newWorkspace(arr, backend, cfg)
			if err != nil {
				errs[w] = err
				return
			}
			for p := w; p < arr.Params(); p += workers {
				if err := ws.estimate(arr.Param(p), &res.ESS[p], &res.Rhat[p]); err != nil {
					errs[w] = err
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

package vm

import "golang.org/x/sync/errgroup"

// RunAll executes every machine's Execute concurrently and returns their
// results in the same order as machines. It exists because a Machine
// instance owns all of its state; spec.md §5 permits multiple independent
// instances to run on independent goroutines without coordination, and
// this is the idiomatic fan-out for that case. Every machine runs to
// completion; errgroup.Group.Wait waits for all of them and returns the
// first error encountered. Results of machines that succeeded are
// populated, and the slot of each machine that failed stays zero.
func RunAll(machines []*Machine) ([]uint32, error) {
	results := make([]uint32, len(machines))
	var g errgroup.Group

	for i, m := range machines {
		i, m := i, m
		g.Go(func() error {
			result, err := m.Execute()
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

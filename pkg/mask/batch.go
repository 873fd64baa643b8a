package mask

import (
	"fmt"

	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/parallel"
	"github.com/dd0wney/regionmask/pkg/region"
)

// GenerateAll classifies the mesh against each region on up to workers
// goroutines. Results keep the order of regions; a failed region leaves a nil
// entry and its error is joined into the returned error.
func (g *Generator) GenerateAll(regions []region.Region, workers int) ([]*Result, error) {
	pool, err := parallel.NewWorkerPool(min(workers, max(len(regions), 1)), g.logger)
	if err != nil {
		return nil, NewError("batch").Cause(fmt.Errorf("%w: %w", ErrConfiguration, err)).Err()
	}

	timer := logging.StartTimer(g.logger, "batch generated",
		logging.Count(len(regions)), logging.Int("workers", pool.Workers()))

	results := make([]*Result, len(regions))
	for i, r := range regions {
		pool.Submit(func() error {
			res, err := g.Generate(r)
			if err != nil {
				return fmt.Errorf("region %d (%s): %w", i, r.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	err = pool.Wait()
	timer.End()
	return results, err
}

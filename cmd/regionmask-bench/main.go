package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dd0wney/regionmask/pkg/config"
	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/mask"
	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/metrics"
	"github.com/dd0wney/regionmask/pkg/region"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envPath    string
	locator    string
	batch      int
	workers    int
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("regionmask-bench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.envPath, "env", ".env", ".env file with environment overrides")
	fs.StringVar(&opts.locator, "locator", "kd", "Nearest-cell locator: kd or linear")
	nLat := fs.Int("nlat", 0, "Grid rows")
	nLon := fs.Int("nlon", 0, "Grid columns")
	lat := fs.Float64("lat", 0, "Region circle center latitude (degrees)")
	lon := fs.Float64("lon", 0, "Region circle center longitude (degrees)")
	radius := fs.Float64("radius", 0, "Region circle radius (degrees)")
	points := fs.Int("points", 0, "Boundary waypoints on the circle")
	layers := fs.Int("layers", 0, "Relaxation layers")
	strategy := fs.String("strategy", "", "Relaxation strategy: search or full-sweep")
	pathfinder := fs.String("pathfinder", "", "Boundary path finder: greedy or shortest-path")
	fs.IntVar(&opts.batch, "batch", 1, "Regions per run; circles are spread evenly in longitude")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "Concurrent generations in batch mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config.LoadDotEnv(opts.envPath)
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Flags given on the command line win over file and environment.
	circleSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nlat":
			cfg.Grid.Rows = *nLat
		case "nlon":
			cfg.Grid.Columns = *nLon
		case "layers":
			cfg.Mask.NumLayers = *layers
		case "strategy":
			cfg.Mask.Strategy = *strategy
		case "pathfinder":
			cfg.Mask.PathFinder = *pathfinder
		case "lat", "lon", "radius", "points":
			circleSet = true
		}
	})
	if circleSet {
		applyCircle(cfg, fs, *lat, *lon, *radius, *points)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, cfg.LogLevel())
	reg := metrics.NewRegistry()
	start := time.Now()

	meshTimer := logging.StartTimer(logger, "mesh built", logging.Component("bench"))
	m, err := mesh.NewLatLonGrid(cfg.Grid.Rows, cfg.Grid.Columns)
	if err != nil {
		return err
	}
	loc, err := newLocator(opts.locator, m)
	if err != nil {
		return err
	}
	meshTime := meshTimer.End(logging.Count(m.NumCells()))

	r, err := cfg.Region.Build()
	if err != nil {
		return err
	}

	g, err := mask.NewGenerator(m, loc, cfg.Mask, mask.WithLogger(logger), mask.WithMetrics(reg))
	if err != nil {
		return err
	}
	res, err := g.Generate(r)
	if err != nil {
		return err
	}

	var batch batchStats
	if opts.batch > 1 {
		regions, err := batchRegions(cfg.Region, opts.batch)
		if err != nil {
			return err
		}
		batchStart := time.Now()
		if _, err := g.GenerateAll(regions, opts.workers); err != nil {
			return err
		}
		batch = batchStats{regions: len(regions), workers: opts.workers, elapsed: time.Since(batchStart)}
	}
	reg.UpdateSystemMetrics(start)

	families, err := reg.GetPrometheusRegistry().Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, renderSummary(summary{
		mesh:     m,
		cfg:      cfg.Mask,
		locator:  opts.locator,
		result:   res,
		meshTime: meshTime,
		total:    time.Since(start),
		families: len(families),
		batch:    batch,
	}))
	return nil
}

// applyCircle replaces the configured region with a circle, filling the
// circle parameters not given on the command line from the default region.
func applyCircle(cfg *config.File, fs *flag.FlagSet, lat, lon, radius float64, points int) {
	c := *config.DefaultRegion().Circle
	if cfg.Region.Circle != nil {
		c = *cfg.Region.Circle
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			c.Lat = lat
		case "lon":
			c.Lon = lon
		case "radius":
			c.Radius = radius
		case "points":
			c.Points = points
		}
	})
	cfg.Region = config.RegionConfig{Name: "circle", Circle: &c}
}

// batchRegions returns n copies of rc. Circular regions are rotated about the
// pole by multiples of 360/n degrees.
func batchRegions(rc config.RegionConfig, n int) ([]region.Region, error) {
	regions := make([]region.Region, 0, n)
	for i := 0; i < n; i++ {
		cur := rc
		if rc.Circle != nil && len(rc.Boundaries) == 0 {
			c := *rc.Circle
			c.Lon += 360 * float64(i) / float64(n)
			cur.Circle = &c
			cur.InPoint = nil
		}
		cur.Name = fmt.Sprintf("%s-%d", rc.Name, i)
		r, err := cur.Build()
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}
	return regions, nil
}

func newLocator(name string, m *mesh.Mesh) (mesh.Locator, error) {
	switch name {
	case "kd":
		return mesh.NewKDLocator(m), nil
	case "linear":
		return mesh.NewLinearLocator(m), nil
	default:
		return nil, fmt.Errorf("unknown locator %q (want kd or linear)", name)
	}
}

package mask

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/regionmask/pkg/logging"
	"github.com/dd0wney/regionmask/pkg/mesh"
	"github.com/dd0wney/regionmask/pkg/metrics"
	"github.com/dd0wney/regionmask/pkg/region"
)

// Generation phases, in execution order.
const (
	PhaseTrace     = "trace"
	PhaseFill      = "fill"
	PhaseRelax     = "relax"
	PhaseAggregate = "aggregate"
)

// Result is the classification of one region against a mesh.
type Result struct {
	RunID  string
	Name   string
	InCell int
	Cell   CellMask
	Edge   []int
	Vertex []int

	// LayerCounts maps each cell classification value to its cell count.
	LayerCounts map[int]int
	Trace       []TraceStats
	Timings     map[string]time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for generation progress.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = logging.OrNop(l) }
}

// WithMetrics records generation metrics into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(g *Generator) { g.metrics = r }
}

// Generator runs the mask pipeline: trace the boundary loops, flood fill
// from the interior point, expand the relaxation layers, derive edge and
// vertex masks. A Generator may be reused for several regions.
type Generator struct {
	mesh     *mesh.Mesh
	locator  mesh.Locator
	cfg      Config
	finder   PathFinder
	strategy LayerStrategy
	logger   logging.Logger
	metrics  *metrics.Registry
}

// NewGenerator validates cfg and prepares a generator over m.
func NewGenerator(m *mesh.Mesh, locator mesh.Locator, cfg Config, opts ...Option) (*Generator, error) {
	if m == nil || locator == nil {
		return nil, NewError("generator").Context("mesh and locator are required").Cause(ErrInvalidInput).Err()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	finder, err := NewPathFinder(cfg.PathFinder)
	if err != nil {
		return nil, err
	}
	strategy, err := NewLayerStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		mesh:     m,
		locator:  locator,
		cfg:      cfg,
		finder:   finder,
		strategy: strategy,
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.metrics != nil {
		g.metrics.SetMeshSize(m.NumCells(), m.NumEdges(), m.NumVertices())
	}
	return g, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate classifies the mesh against r.
func (g *Generator) Generate(r region.Region) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:   uuid.New().String(),
		Name:    r.Name,
		InCell:  -1,
		Timings: make(map[string]time.Duration),
	}
	logger := g.logger.With(logging.Component("generator"), logging.RunID(res.RunID))

	if err := r.Validate(); err != nil {
		return nil, g.fail(logger, start, nil, NewError("generate").Region(r.Name).Cause(invalidInput(err)).Err())
	}

	logger.Info("generating mask",
		logging.String("region", r.Name),
		logging.Int("boundaries", len(r.Boundaries)),
		logging.Int("layers", g.cfg.NumLayers),
		logging.Strategy(g.strategy.Name()),
		logging.String("pathfinder", g.finder.Name()))

	res.Cell = NewCellMask(g.mesh.NumCells())

	// Every loop is traced into the same mask before the single fill.
	timer := logging.StartTimer(logger, "boundaries traced", logging.Phase(PhaseTrace))
	tracer := NewTracer(g.mesh, g.locator, g.finder, logger)
	for i, loop := range r.Boundaries {
		stats, err := tracer.TraceBoundary(i, loop, res.Cell)
		g.recordTrace(stats)
		if err != nil {
			return nil, g.fail(logger, start, timer, err)
		}
		res.Trace = append(res.Trace, stats)
	}
	g.phaseDone(res, PhaseTrace, timer.End(logging.Count(len(r.Boundaries))))

	timer = logging.StartTimer(logger, "interior filled", logging.Phase(PhaseFill))
	res.InCell = g.locator.NearestCell(*r.InPoint)
	filled, err := FloodFill(g.mesh, res.InCell, res.Cell)
	if err != nil {
		return nil, g.fail(logger, start, timer, err)
	}
	g.phaseDone(res, PhaseFill, timer.End(logging.Cell(res.InCell), logging.Count(filled)))

	timer = logging.StartTimer(logger, "relaxation layers expanded", logging.Phase(PhaseRelax))
	added, err := ExpandRelaxationLayers(g.mesh, g.cfg.NumLayers, res.Cell, g.strategy, res.InCell)
	if err != nil {
		return nil, g.fail(logger, start, timer, err)
	}
	for k, n := range added {
		logger.Debug("relaxation layer", logging.Layer(LayerValue(k+1)), logging.Count(n))
	}
	g.phaseDone(res, PhaseRelax, timer.End(logging.Strategy(g.strategy.Name())))

	timer = logging.StartTimer(logger, "edges and vertices classified", logging.Phase(PhaseAggregate))
	if res.Edge, err = DeriveEdgeMask(g.mesh, res.Cell); err != nil {
		return nil, g.fail(logger, start, timer, err)
	}
	if res.Vertex, err = DeriveVertexMask(g.mesh, res.Cell); err != nil {
		return nil, g.fail(logger, start, timer, err)
	}
	g.phaseDone(res, PhaseAggregate, timer.End())

	res.LayerCounts = Counts(res.Cell)
	if logging.Enabled(logger, logging.DebugLevel) {
		logger.Debug("mask counts",
			logging.Histogram("cells", res.LayerCounts),
			logging.Histogram("edges", Counts(res.Edge)),
			logging.Histogram("vertices", Counts(res.Vertex)))
	}

	elapsed := time.Since(start)
	if g.metrics != nil {
		g.metrics.SetCellCounts(res.LayerCounts)
		g.metrics.RecordGeneration("success", elapsed)
	}
	logger.Info("mask generated",
		logging.String("region", r.Name),
		logging.Int("inside", res.LayerCounts[Inside]),
		logging.Elapsed(elapsed))
	return res, nil
}

func (g *Generator) phaseDone(res *Result, phase string, d time.Duration) {
	res.Timings[phase] = d
	if g.metrics != nil {
		g.metrics.RecordPhase(phase, d)
	}
}

func (g *Generator) recordTrace(stats TraceStats) {
	if g.metrics == nil {
		return
	}
	for _, seg := range stats.Segments {
		g.metrics.RecordTrace(seg.Steps, seg.Failed)
	}
	if len(stats.BoundaryCells) > 0 && (len(stats.Segments) == 0 || !stats.Segments[len(stats.Segments)-1].Failed) {
		g.metrics.RecordLoop()
	}
}

// fail closes the running phase timer, if any, and records the failure.
func (g *Generator) fail(logger logging.Logger, start time.Time, timer *logging.TimedOperation, err error) error {
	if timer != nil {
		timer.EndError(err)
	}
	if g.metrics != nil {
		g.metrics.RecordGeneration(status(err), time.Since(start))
	}
	logger.Error("mask generation failed", logging.Error(err))
	return err
}

// status labels err for the generations counter.
func status(err error) string {
	switch {
	case IsTraceFailure(err):
		return "trace_failure"
	case IsConfigurationError(err):
		return "configuration_error"
	case IsInvalidInput(err):
		return "invalid_input"
	default:
		return "error"
	}
}

package triangle

import (
	"image"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Default processing options.
const (
	DefaultBlurRadius      = 1
	DefaultEdgeRadius      = 6
	DefaultPointsThreshold = 10
	DefaultPointRate       = 0.075
	DefaultMaxPoints       = 2500
)

// Processor : type with processing options
type Processor struct {
	// BlurRadius is the radius of the box blur applied before edge detection.
	BlurRadius int
	// EdgeRadius is the radius of the edge emphasis kernel. It must be at least 1.
	EdgeRadius int
	// PointsThreshold is compared against the 3x3 red average of the edge image.
	PointsThreshold int
	// PointRate is the fraction of the edge candidates turned into triangle points.
	PointRate float64
	// MaxPoints caps the number of sampled points.
	MaxPoints int
	// Grayscale desaturates the source image before processing.
	Grayscale bool
	// Seed initializes the random source of the sampler. Zero seeds from the clock.
	Seed int64
	// Logger receives the stage traces. A nil logger discards them.
	Logger *zap.Logger
}

// NewProcessor returns a processor initialized with the default options.
func NewProcessor() *Processor {
	return &Processor{
		BlurRadius:      DefaultBlurRadius,
		EdgeRadius:      DefaultEdgeRadius,
		PointsThreshold: DefaultPointsThreshold,
		PointRate:       DefaultPointRate,
		MaxPoints:       DefaultMaxPoints,
	}
}

// Validate checks the processing options.
func (p *Processor) Validate() error {
	switch {
	case p.BlurRadius < 0:
		return errors.Wrapf(ErrInvalidConfig, "blur radius must be non-negative, got %d", p.BlurRadius)
	case p.EdgeRadius < 1:
		return errors.Wrapf(ErrInvalidConfig, "edge radius must be at least 1, got %d", p.EdgeRadius)
	case p.PointRate <= 0 || p.PointRate > 1:
		return errors.Wrapf(ErrInvalidConfig, "point rate must be in (0, 1], got %g", p.PointRate)
	case p.MaxPoints < 0:
		return errors.Wrapf(ErrInvalidConfig, "max points must be non-negative, got %d", p.MaxPoints)
	}
	return nil
}

// Result holds the outcome of the triangulation.
type Result struct {
	// Triangles is the generated mesh. It may be empty.
	Triangles []Triangle
	// Source is the color image used to paint the triangles. It is never blurred nor
	// edge filtered, but it is desaturated when the grayscale option is set.
	Source *image.NRGBA
	// Candidates is the number of pixels which passed the points threshold.
	Candidates int
	// Points is the sampled point sequence, in insertion order.
	Points []Point
	// Skipped holds the points whose insertion was rejected as degenerate.
	Skipped []Point
}

// Triangulate runs the blur, edge detection, point sampling and triangulation stages over the source image.
// An empty triangle set is a valid result, which callers should treat as nothing to render.
func (p *Processor) Triangulate(src image.Image) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger := p.logger()
	start := time.Now()

	img := ImgToNRGBA(src)
	if p.Grayscale {
		img = Grayscale(img)
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	edges := NewChain(Blur{p.BlurRadius}, Edge{p.EdgeRadius}).Apply(img)
	logger.Debug("edge detection done",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Duration("elapsed", time.Since(start)),
	)

	candidates := EdgeCandidates(edges, p.PointsThreshold)
	points := SamplePoints(candidates, p.PointRate, p.MaxPoints, rand.New(rand.NewSource(p.seed())))
	logger.Debug("points sampled",
		zap.Int("candidates", len(candidates)),
		zap.Int("points", len(points)),
		zap.Duration("elapsed", time.Since(start)),
	)

	res := &Result{
		Source:     img,
		Candidates: len(candidates),
		Points:     points,
	}
	// Without any sampled point the mesh would only be the domain tiling.
	if len(points) > 0 {
		delaunay := (&Delaunay{}).Init(width, height)
		for _, pt := range points {
			if err := delaunay.InsertPoint(pt); err != nil {
				logger.Debug("point skipped", zap.Error(err))
			}
		}
		res.Triangles = delaunay.GetTriangles()
		res.Skipped = delaunay.Skipped()
	}
	logger.Info("triangulation done",
		zap.Int("candidates", res.Candidates),
		zap.Int("points", len(res.Points)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("triangles", len(res.Triangles)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Processor) seed() int64 {
	if p.Seed == 0 {
		return time.Now().UnixNano()
	}
	return p.Seed
}

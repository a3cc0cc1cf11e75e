package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	tri "github.com/lowpoly/triangle"
	"github.com/lowpoly/triangle/utils"
)

const (
	flagInput           = "in"
	flagOutput          = "out"
	flagBlurRadius      = "bf"
	flagEdgeRadius      = "sf"
	flagPointsThreshold = "pt"
	flagMaxPoints       = "mp"
	flagPointRate       = "pr"
	flagGrayscale       = "gr"
	flagWireframeOnly   = "ow"
	flagWireframe       = "wf"
	flagStrokeWidth     = "sw"
	flagWithBackground  = "wb"
	flagBackgroundColor = "bc"
	flagStrokeColor     = "sc"
	flagNoise           = "noise"
	flagSeed            = "seed"
	flagDebug           = "debug"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, utils.Error(err.Error()))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "triangle",
		Usage: "convert images to computer generated art using delaunay triangulation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagInput, Usage: "source image path or http(s) URL", Required: true},
			&cli.StringFlag{Name: flagOutput, Usage: "destination image, .svg selects vector output", Required: true},
			&cli.IntFlag{Name: flagBlurRadius, Value: tri.DefaultBlurRadius, Usage: "blur filter radius", EnvVars: []string{"TRIANGLE_BLUR_RADIUS"}},
			&cli.IntFlag{Name: flagEdgeRadius, Value: tri.DefaultEdgeRadius, Usage: "edge filter radius", EnvVars: []string{"TRIANGLE_EDGE_RADIUS"}},
			&cli.IntFlag{Name: flagPointsThreshold, Value: tri.DefaultPointsThreshold, Usage: "edge filter threshold", EnvVars: []string{"TRIANGLE_POINTS_THRESHOLD"}},
			&cli.IntFlag{Name: flagMaxPoints, Value: tri.DefaultMaxPoints, Usage: "maximum number of points in the generated image", EnvVars: []string{"TRIANGLE_MAX_POINTS"}},
			&cli.Float64Flag{Name: flagPointRate, Value: tri.DefaultPointRate, Usage: "fraction of the edge points used as triangle vertices", EnvVars: []string{"TRIANGLE_POINT_RATE"}},
			&cli.BoolFlag{Name: flagGrayscale, Usage: "convert image to grayscale"},
			&cli.BoolFlag{Name: flagWireframeOnly, Usage: "do not fill the triangles, only stroke them"},
			&cli.BoolFlag{Name: flagWireframe, Usage: "stroke the filled triangles"},
			&cli.Float64Flag{Name: flagStrokeWidth, Value: 1, Usage: "stroke width in the generated image"},
			&cli.BoolFlag{Name: flagWithBackground, Usage: "paint a background behind the triangles"},
			&cli.StringFlag{Name: flagBackgroundColor, Value: "#ffffff", Usage: "background color in hex format"},
			&cli.StringFlag{Name: flagStrokeColor, Usage: "stroke color in hex format"},
			&cli.IntFlag{Name: flagNoise, Usage: "grain noise amount applied to raster output"},
			&cli.Int64Flag{Name: flagSeed, Usage: "random seed of the point sampler, 0 seeds from the clock"},
			&cli.BoolFlag{Name: flagDebug, Usage: "enable debug logging"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	proc := &tri.Processor{
		BlurRadius:      c.Int(flagBlurRadius),
		EdgeRadius:      c.Int(flagEdgeRadius),
		PointsThreshold: c.Int(flagPointsThreshold),
		PointRate:       c.Float64(flagPointRate),
		MaxPoints:       c.Int(flagMaxPoints),
		Grayscale:       c.Bool(flagGrayscale),
		Seed:            c.Int64(flagSeed),
		Logger:          logger,
	}
	if err := proc.Validate(); err != nil {
		return err
	}
	drawer, err := newDrawer(c)
	if err != nil {
		return err
	}

	src, err := openSource(c.String(flagInput))
	if err != nil {
		return err
	}

	s := utils.NewSpinner()
	s.Start(utils.Success("start generating delaunay image ..."))
	start := time.Now()
	res, err := proc.Triangulate(src)
	s.Stop()
	if err != nil {
		return err
	}
	if len(res.Triangles) == 0 {
		return tri.ErrNoTriangles
	}

	out := c.String(flagOutput)
	if err := render(drawer, res, out); err != nil {
		return err
	}

	fmt.Println(utils.Success(fmt.Sprintf("generated in %s: %d triangles out of %d points",
		utils.FormatTime(time.Since(start)), len(res.Triangles), len(res.Points))))
	fmt.Println(utils.Success(fmt.Sprintf("done (delaunay image is saved as %s)", filepath.Base(out))))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func newDrawer(c *cli.Context) (*tri.Drawer, error) {
	d := tri.NewDrawer()
	d.StrokeWidth = c.Float64(flagStrokeWidth)
	d.Noise = c.Int(flagNoise)

	switch {
	case c.Bool(flagWireframeOnly):
		d.Wireframe = tri.WireframeOnly
	case c.Bool(flagWireframe):
		d.Wireframe = tri.WithWireframe
	}

	if c.Bool(flagWithBackground) {
		bg, err := utils.ParseHexColor(c.String(flagBackgroundColor))
		if err != nil {
			return nil, err
		}
		d.BackgroundColor = bg
	}
	if hex := c.String(flagStrokeColor); hex != "" {
		sc, err := utils.ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		d.StrokeColor = sc
	}
	return d, nil
}

// openSource decodes the source image, downloading it first when it is a remote URL.
func openSource(source string) (image.Image, error) {
	if !utils.IsURL(source) {
		return tri.Open(source)
	}
	f, err := utils.DownloadImage(source)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	return tri.Decode(f)
}

func render(d *tri.Drawer, res *tri.Result, out string) error {
	if strings.EqualFold(filepath.Ext(out), ".svg") {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "could not save output image")
		}
		if err := d.DrawSVG(f, res.Source, res.Triangles); err != nil {
			f.Close()
			return err
		}
		return errors.Wrap(f.Close(), "could not save output image")
	}

	img, err := d.Draw(res.Source, res.Triangles)
	if err != nil {
		return err
	}
	return tri.Save(img, out)
}

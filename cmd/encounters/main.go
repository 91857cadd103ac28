// Command encounters generates synthetic two-aircraft encounters from the
// statistical motion models and renders them for inspection.
//
// Each run gets a UUID used in log lines and output filenames. Output is a
// text summary by default; -format html renders per-axis position charts
// (go-echarts) and -format png renders a ground-track plot (gonum/plot).
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/encounter.report/internal/config"
	"github.com/banshee-data/encounter.report/internal/encounter"
	"github.com/banshee-data/encounter.report/internal/geom"
	"github.com/banshee-data/encounter.report/internal/monitoring"
	"github.com/banshee-data/encounter.report/internal/units"
	"github.com/banshee-data/encounter.report/internal/version"
)

var (
	showVersion = flag.Bool("version", false, "Print version information and exit")
	listModels  = flag.Bool("list", false, "List available models and exit")
	modelID     = flag.String("model", "", "Motion model to use (overrides config): "+strings.Join(encounter.ListModels(), ", "))
	configPath  = flag.String("config", "", "Scenario config JSON file")
	seed        = flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	count       = flag.Int("count", 1, "Number of encounters to generate")
	format      = flag.String("format", "text", "Output format: text, html or png")
	outDir      = flag.String("out", ".", "Output directory for html/png renders")
	speedUnits  = flag.String("units", units.MPS, "Speed units for summaries: "+units.GetValidUnitsString())
	sampleSecs  = flag.Float64("sample-interval", 0.05, "Evaluation interval in seconds for summaries and renders")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("encounters %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listModels {
		for _, id := range encounter.ListModels() {
			fmt.Println(id)
		}
		return
	}

	if !units.IsValid(*speedUnits) {
		log.Fatalf("invalid units %q (valid: %s)", *speedUnits, units.GetValidUnitsString())
	}
	if *sampleSecs <= 0 {
		log.Fatalf("sample-interval must be positive, got %g", *sampleSecs)
	}

	cfg := config.EmptyScenarioConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *modelID != "" {
		cfg.Model = modelID
	}

	params, err := cfg.ModelParams()
	if err != nil {
		log.Fatalf("build model parameters: %v", err)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = cfg.GetSeed()
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(runSeed))

	runID := uuid.New()
	monitoring.Logf("run %s: model=%s seed=%d count=%d", runID, params.ModelID(), runSeed, *count)

	for i := 0; i < *count; i++ {
		enc, err := encounter.Generate(params, rng)
		if err != nil {
			log.Fatalf("generate encounter %d: %v", i+1, err)
		}
		summarize(enc, i+1)

		switch *format {
		case "text":
			// Summary only.
		case "html":
			path := filepath.Join(*outDir, fmt.Sprintf("%s-%03d.html", runID, i+1))
			if err := renderHTML(enc, path); err != nil {
				log.Fatalf("render %s: %v", path, err)
			}
			monitoring.Logf("wrote %s", path)
		case "png":
			path := filepath.Join(*outDir, fmt.Sprintf("%s-%03d-track.png", runID, i+1))
			if err := renderTrackPlot(enc, path); err != nil {
				log.Fatalf("render %s: %v", path, err)
			}
			monitoring.Logf("wrote %s", path)
		default:
			log.Fatalf("unknown format %q (valid: text, html, png)", *format)
		}
	}
}

// summarize logs the encounter window, keypoint counts, closing speed and
// closest approach, flagging any collision-box overlap.
func summarize(enc *encounter.Encounter, n int) {
	t0, t1 := enc.Duration()
	monitoring.Logf("encounter %d: model=%s window=[%.2fs, %.2fs] keypoints=%d/%d",
		n, enc.Model, t0, t1,
		len(enc.Flights[0].Path.Keypoints()), len(enc.Flights[1].Path.Keypoints()))

	minDist := math.Inf(1)
	minDistT := t0
	overlap := false
	for t := t0; t <= t1; t += *sampleSecs {
		p1, p2, _, _, err := enc.Evaluate(t)
		if err != nil {
			log.Fatalf("evaluate t=%g: %v", t, err)
		}
		d := p1.Sub(p2)
		dist := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
		if dist < minDist {
			minDist = dist
			minDistT = t
		}
		b1 := geom.BoxAround(p1, enc.Flights[0].Size)
		b2 := geom.BoxAround(p2, enc.Flights[1].Size)
		if b1.Intersects(b2) {
			overlap = true
		}
	}

	closing := closingSpeed(enc, t0, t1)
	monitoring.Logf("encounter %d: closest approach %.2fm at t=%.2fs, closing speed %.2f %s, collision-box overlap: %v",
		n, minDist, minDistT, units.ConvertSpeed(closing, *speedUnits), *speedUnits, overlap)
}

// closingSpeed returns the relative longitudinal speed of the pair, taken
// from the along-track travel of each aircraft over the window.
func closingSpeed(enc *encounter.Encounter, t0, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	v1 := (enc.Flights[0].Path.PositionAt(t1).X - enc.Flights[0].Path.PositionAt(t0).X) / (t1 - t0)
	v2 := (enc.Flights[1].Path.PositionAt(t1).X - enc.Flights[1].Path.PositionAt(t0).X) / (t1 - t0)
	return math.Abs(v1 - v2)
}

// renderHTML writes per-axis position-vs-time line charts for both aircraft.
func renderHTML(enc *encounter.Encounter, path string) error {
	t0, t1 := enc.Duration()

	var labels []string
	var samples [2][]geom.Vec3
	for t := t0; t <= t1; t += *sampleSecs {
		p1, p2, _, _, err := enc.Evaluate(t)
		if err != nil {
			return err
		}
		labels = append(labels, fmt.Sprintf("%.2f", t))
		samples[0] = append(samples[0], p1)
		samples[1] = append(samples[1], p2)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Encounter (%s)", enc.Model)
	axes := []struct {
		name string
		get  func(geom.Vec3) float64
	}{
		{"longitudinal x (m)", func(p geom.Vec3) float64 { return p.X }},
		{"lateral y (m)", func(p geom.Vec3) float64 { return p.Y }},
		{"vertical z (m)", func(p geom.Vec3) float64 { return p.Z }},
	}
	for _, axis := range axes {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: axis.name, Subtitle: enc.Model}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		)
		var s1, s2 []opts.LineData
		for i := range labels {
			s1 = append(s1, opts.LineData{Value: axis.get(samples[0][i])})
			s2 = append(s2, opts.LineData{Value: axis.get(samples[1][i])})
		}
		line.SetXAxis(labels).
			AddSeries("aircraft 1", s1).
			AddSeries("aircraft 2", s2)
		page.AddCharts(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

// renderTrackPlot writes a ground-track (y vs x) plot for both aircraft.
func renderTrackPlot(enc *encounter.Encounter, path string) error {
	t0, t1 := enc.Duration()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Ground track (%s)", enc.Model)
	p.X.Label.Text = "longitudinal x (m)"
	p.Y.Label.Text = "lateral y (m)"

	for i, name := range []string{"aircraft 1", "aircraft 2"} {
		var pts plotter.XYs
		for t := t0; t <= t1; t += *sampleSecs {
			pos := enc.Flights[i].Path.PositionAt(t)
			pts = append(pts, plotter.XY{X: pos.X, Y: pos.Y})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

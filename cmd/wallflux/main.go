// Command wallflux runs a Monte Carlo tokamak wall radiation load
// estimate from a YAML run descriptor and prints per-element heat
// flux. Grounded on cmd/manipulator/main.go's flag-based CLI style.
package main

import (
	"context"
	"encoding/binary"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"

	"github.com/itohio/wallflux/pkg/config"
	"github.com/itohio/wallflux/pkg/eqdsk"
	"github.com/itohio/wallflux/pkg/geom"
	"github.com/itohio/wallflux/pkg/gmsh"
	"github.com/itohio/wallflux/pkg/logger"
	"github.com/itohio/wallflux/pkg/pdf"
	"github.com/itohio/wallflux/pkg/radiation"
)

var log = logger.Component("wallflux")

func main() {
	help := flag.Bool("help", false, "Show help message")
	configPath := flag.String("config", "", "Path to the YAML run descriptor")
	outPath := flag.String("out", "", "Output path for per-element heat flux (default: stdout)")
	format := flag.String("format", "csv", "Output format: csv or yaml")

	flag.Parse()

	if *help || *configPath == "" {
		fmt.Println("wallflux - Monte Carlo tokamak wall radiation load engine")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, *configPath, *outPath, *format); err != nil {
		log.Error().Err(err).Msg("wallflux: run failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outPath, format string) error {
	runID := uuid.New()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log.Info().
		Str("run_id", runID.String()).
		Str("seed", encodeSeed(cfg.Seed)).
		Int("samples", cfg.Samples).
		Int("workers", cfg.Workers).
		Msg("wallflux: starting run")

	var meshOpts []geom.Option
	if cfg.TieBreakByIndex {
		meshOpts = append(meshOpts, geom.WithTieBreakByIndex())
	}
	mesh, err := gmsh.Load(cfg.MeshPath, meshOpts...)
	if err != nil {
		return fmt.Errorf("loading mesh: %w", err)
	}

	equi, err := eqdsk.Load(cfg.EqdskPath)
	if err != nil {
		return fmt.Errorf("loading equilibrium: %w", err)
	}

	profile, err := pdf.NewRadiationProfile(cfg.Profile.Rho, cfg.Profile.P)
	if err != nil {
		return fmt.Errorf("building radiation profile: %w", err)
	}

	var distOpts []radiation.Option
	if cfg.Contour != nil {
		contour, err := geom.NewPolygon2D(cfg.Contour.R, cfg.Contour.Z)
		if err != nil {
			return fmt.Errorf("building contour: %w", err)
		}
		distOpts = append(distOpts, radiation.WithContour(contour))
	}
	if cfg.R0Envelope {
		distOpts = append(distOpts, radiation.WithR0Envelope())
	}

	dist, err := radiation.New(equi, profile, cfg.Seed, distOpts...)
	if err != nil {
		return fmt.Errorf("building radiation distribution: %w", err)
	}

	load := radiation.NewRadiationLoad(mesh, dist, cfg.Seed)
	if err := load.AddSamples(ctx, cfg.Samples, cfg.Workers); err != nil {
		return fmt.Errorf("running addSamples: %w", err)
	}

	flux := load.HeatFlux(cfg.TotalPower)
	log.Info().
		Str("run_id", runID.String()).
		Int("elements", len(flux)).
		Msg("wallflux: run complete")

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return writeCSV(w, flux)
	case "yaml":
		return writeYAML(w, flux)
	default:
		return fmt.Errorf("unknown output format %q (want csv or yaml)", format)
	}
}

func writeCSV(f *os.File, flux []float64) error {
	cw := csv.NewWriter(f)
	defer cw.Flush()
	if err := cw.Write([]string{"element", "heat_flux_w_m2"}); err != nil {
		return err
	}
	for i, v := range flux {
		if err := cw.Write([]string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(f *os.File, flux []float64) error {
	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(struct {
		HeatFlux []float64 `yaml:"heat_flux_w_m2"`
	}{HeatFlux: flux})
}

// encodeSeed renders the seed as base58, a compact form for log lines
// and run manifests, grounded on the teacher module's use of
// github.com/mr-tron/base58 for compact identifier display.
func encodeSeed(seed int64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(seed))
	return base58.Encode(b[:])
}

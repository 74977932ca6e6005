package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/galton/internal/automation"
	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/config"
	"github.com/san-kum/galton/internal/export"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/viz"
	"github.com/san-kum/galton/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func cliLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return SetupCLILogger(cmd.ErrOrStderr(), level), nil
}

// chartWidth sizes plots to the terminal, 60 columns when stdout is not one.
func chartWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 60
	}
	return min(max(w-12, 20), 100)
}

func newDistCmd(v *viper.Viper) *cobra.Command {
	var noPlot bool
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "print the theoretical distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dist := binomial.Distribution(cfg.Probability, cfg.TotalUnits, cfg.Steps)
			probs := binomial.Probabilities(cfg.Steps, cfg.Probability)
			center := cfg.Steps / 2

			fmt.Fprintf(out, "p=%.2f  balls=%g  steps=%d\n\n", cfg.Probability, cfg.TotalUnits, cfg.Steps)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BUCKET\tCOLUMN\tPROBABILITY\tBALLS")
			for k, count := range dist {
				fmt.Fprintf(w, "%d\t%g\t%.6f\t%d\n", k, binomial.Column(k, center, cfg.Steps), probs[k], count)
			}
			w.Flush()

			fmt.Fprintf(out, "\nplaced %d (drift %+g)  mean %.2f  variance %.2f\n",
				dist.Total(), dist.Drift(cfg.TotalUnits),
				binomial.Mean(cfg.Steps, cfg.Probability), binomial.Variance(cfg.Steps, cfg.Probability))

			if !noPlot && len(dist) > 1 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, asciigraph.Plot(dist.Floats(),
					asciigraph.Height(10),
					asciigraph.Width(chartWidth()),
					asciigraph.LowerBound(0),
					asciigraph.Precision(0),
					asciigraph.Caption("expected balls per bucket")))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the chart")
	return cmd
}

func newWalkCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "walk [choices]",
		Short: "trace one path from a choice string such as RRLRLRLLRR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			dirs, err := walk.ParseChoices(args[0])
			if err != nil {
				return err
			}

			s := sim.New(cfg.Parameters())
			s.SwitchMode(true)
			ignored := 0
			for _, d := range dirs {
				if !s.Choose(d) {
					ignored++
				}
			}

			snap := s.Snapshot()
			out := cmd.OutOrStdout()
			positions := make([]string, len(snap.Path))
			for i, p := range snap.Path {
				positions[i] = p.String()
			}
			fmt.Fprintf(out, "path:     %s\n", strings.Join(positions, " -> "))
			fmt.Fprintf(out, "choices:  %s (%d/%d)\n", walk.FormatChoices(snap.Choices), len(snap.Choices), cfg.Steps)
			fmt.Fprintf(out, "position: %s\n", snap.Position)
			if snap.Complete {
				fmt.Fprintf(out, "complete: bucket %d\n", walk.New(cfg.Steps).Bucket(snap.Position))
			} else {
				fmt.Fprintf(out, "complete: no, %d choices left\n", cfg.Steps-len(snap.Choices))
			}
			if ignored > 0 {
				fmt.Fprintf(out, "ignored:  %d choices after completion\n", ignored)
			}
			return nil
		},
	}
}

func newSimulateCmd(v *viper.Viper) *cobra.Command {
	var drops int
	var noPlot bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "drop random paths and compare them with the theory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			logger, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}
			logger.Debug("simulate", "drops", drops, "probability", cfg.Probability, "seed", cfg.Seed)

			res, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
				Probability: cfg.Probability,
				Steps:       cfg.Steps,
				Trials:      drops,
				Seed:        cfg.Seed,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BUCKET\tEXPECTED\tOBSERVED")
			for k := range res.Histogram {
				fmt.Fprintf(w, "%d\t%.1f\t%d\n", k, res.Expected[k], res.Histogram[k])
			}
			w.Flush()

			fmt.Fprintf(out, "\ntotal variation distance %.4f\n", res.Distance)
			writeMetrics(out, res.Metrics)

			if !noPlot && len(res.Histogram) > 1 {
				observed := make([]float64, len(res.Histogram))
				for k, c := range res.Histogram {
					observed[k] = float64(c)
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, asciigraph.PlotMany([][]float64{observed, res.Expected},
					asciigraph.Height(10),
					asciigraph.Width(chartWidth()),
					asciigraph.LowerBound(0),
					asciigraph.Precision(0),
					asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
					asciigraph.SeriesLegends("observed", "expected")))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&drops, "drops", 1000, "number of random paths")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the chart")
	return cmd
}

func newSweepCmd(v *viper.Viper) *cobra.Command {
	var points, trials int
	var from, to float64
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run simulations across a range of probabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			logger, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}

			results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
				ProbMin:  from,
				ProbMax:  to,
				NumSteps: points,
				Trials:   trials,
				Steps:    cfg.Steps,
				Seed:     cfg.Seed,
			}, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROBABILITY\tMEAN\tOBSERVED MEAN\tDISTANCE")
			for _, r := range results {
				fmt.Fprintf(w, "%.2f\t%.2f\t%.2f\t%.4f\n", r.Probability, r.TheoreticalMean, r.EmpiricalMean, r.Distance)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&points, "points", 11, "number of probabilities")
	cmd.Flags().IntVar(&trials, "trials", 500, "random paths per probability")
	cmd.Flags().Float64Var(&from, "from", 0, "first probability")
	cmd.Flags().Float64Var(&to, "to", 1, "last probability")
	return cmd
}

func newReplayCmd(v *viper.Viper) *cobra.Command {
	var outPath, format string
	cmd := &cobra.Command{
		Use:   "replay [scenario.yaml]",
		Short: "replay a scripted scenario of manual paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			logger, err := cliLogger(cmd, cfg)
			if err != nil {
				return err
			}

			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return fmt.Errorf("load scenario: %w", err)
			}

			s := newSession(cfg)
			s.AddObserver(sim.NewLogObserver(logger))
			report, err := automation.RunScenario(cmd.Context(), scenario, s, automation.NewRand(cfg.Seed), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if scenario.Name != "" {
				fmt.Fprintf(out, "%s\n", scenario.Name)
			}
			if scenario.Description != "" {
				fmt.Fprintf(out, "%s\n", scenario.Description)
			}
			fmt.Fprintf(out, "completed paths: %d\n", report.Paths)
			fmt.Fprintf(out, "incomplete:      %d\n", report.Incomplete)
			fmt.Fprintf(out, "ignored choices: %d\n", report.Ignored)
			fmt.Fprintf(out, "final position:  %s\n", report.Final)
			fmt.Fprintf(out, "histogram:       %v\n", report.Histogram)
			writeMetrics(out, report.Metrics)

			if outPath != "" {
				return saveSnapshot(outPath, format, s, cfg)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also export the final board to this file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: svg, json or csv (default from extension)")
	return cmd
}

func newExportCmd(v *viper.Viper) *cobra.Command {
	var outPath, format string
	var paths []string
	var drops int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the board as SVG, JSON or CSV",
		Long: `export writes the automatic board, or a manual board built from
--paths and --drops, to a file or to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(v)
			if err != nil {
				return err
			}
			if len(paths) > 0 || drops > 0 {
				cfg.Manual = true
			}
			s := newSession(cfg)

			for _, p := range paths {
				dirs, err := walk.ParseChoices(p)
				if err != nil {
					return err
				}
				s.Reset()
				for _, d := range dirs {
					s.Choose(d)
				}
			}
			rng := automation.NewRand(cfg.Seed)
			for i := 0; i < drops; i++ {
				s.Drop(rng)
			}

			if outPath == "" || outPath == "-" {
				f, err := formatFor("", format)
				if err != nil {
					return err
				}
				return export.Write(cmd.OutOrStdout(), f, s.Snapshot(), viz.GetTheme(cfg.Theme).SVGStyle())
			}
			if err := saveSnapshot(outPath, format, s, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "svg, json or csv (default from extension, else svg)")
	cmd.Flags().StringSliceVar(&paths, "paths", nil, "choice strings to replay in manual mode")
	cmd.Flags().IntVar(&drops, "drops", 0, "random paths to add in manual mode")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROBABILITY\tBALLS\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%g\t%d\n", name, p.Probability, p.TotalUnits, p.Steps)
			}
			return w.Flush()
		},
	}
}

// formatFor picks the explicit format, else the file extension, else SVG.
func formatFor(path, format string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		return export.ParseFormat(strings.ToLower(ext))
	}
	return export.FormatSVG, nil
}

func saveSnapshot(path, format string, s *sim.Session, cfg *config.Config) error {
	f, err := formatFor(path, format)
	if err != nil {
		return err
	}
	return export.Save(path, f, s.Snapshot(), viz.GetTheme(cfg.Theme).SVGStyle())
}

func writeMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-18s %.4f\n", name, m[name])
	}
}

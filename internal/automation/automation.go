package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/metrics"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a scripted sequence of manual-mode paths.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Probability *float64       `yaml:"probability"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep replays a choice string, or drops random paths when Drops is
// set. Repeat runs the step more than once.
type ScenarioStep struct {
	Choices string `yaml:"choices"`
	Drops   int    `yaml:"drops"`
	Repeat  int    `yaml:"repeat"`
}

// Report summarises a scenario run.
type Report struct {
	Paths      int
	Incomplete int
	Ignored    int
	Histogram  []int
	Metrics    map[string]float64
	Final      walk.Position
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	for i, step := range scenario.Steps {
		if _, err := walk.ParseChoices(step.Choices); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// RunScenario switches s to manual mode, which clears earlier paths, and
// replays every step. Each replayed path starts from a fresh reset. Choices
// beyond the step count are counted as ignored; a short choice string leaves
// its path incomplete.
func RunScenario(ctx context.Context, scenario *Scenario, s *sim.Session, src sim.Source, logger *slog.Logger) (*Report, error) {
	if scenario == nil || len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	if logger == nil {
		logger = slog.Default()
	}

	if scenario.Probability != nil {
		s.SwitchMode(false)
		s.SetProbability(*scenario.Probability)
	}
	s.SwitchMode(true)

	report := &Report{}
	for i, step := range scenario.Steps {
		repeat := step.Repeat
		if repeat < 1 {
			repeat = 1
		}
		dirs, err := walk.ParseChoices(step.Choices)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}

		for r := 0; r < repeat; r++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if len(dirs) > 0 {
				s.Reset()
				for _, d := range dirs {
					if !s.Choose(d) {
						report.Ignored++
					}
				}
				if !s.Complete() {
					report.Incomplete++
				}
			}
			for d := 0; d < step.Drops; d++ {
				s.Drop(src)
			}
		}
		logger.Debug("scenario step", "step", i+1, "choices", step.Choices, "drops", step.Drops, "repeat", repeat)
	}

	report.Paths = s.CompletedCount()
	report.Histogram = s.Histogram()
	report.Metrics = s.Metrics()
	report.Final = s.Position()
	return report, nil
}

// NewRand returns a PCG generator; seed 0 picks a time based seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ParameterSweep drops Trials paths for each right probability between
// ProbMin and ProbMax.
type ParameterSweep struct {
	ProbMin  float64
	ProbMax  float64
	NumSteps int
	Trials   int
	Steps    int
	Seed     uint64
}

type SweepResult struct {
	Probability     float64
	TheoreticalMean float64
	EmpiricalMean   float64
	Distance        float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || sweep.Trials < 1 {
		return nil, fmt.Errorf("sweep needs at least one point and one trial")
	}
	if logger == nil {
		logger = slog.Default()
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ProbMax - sweep.ProbMin) / float64(sweep.NumSteps-1)
	}

	base := baseSeed(sweep.Seed)

	// every point owns its session and source, so points run in parallel
	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			p := sweep.ProbMin + float64(idx)*paramStep
			mc, err := RunMonteCarlo(ctx, &MonteCarloConfig{
				Probability: p,
				Steps:       sweep.Steps,
				Trials:      sweep.Trials,
				Seed:        seedAt(base, idx),
			})
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = SweepResult{
				Probability:     p,
				TheoreticalMean: binomial.Mean(sweep.Steps, p),
				EmpiricalMean:   mc.Metrics["endpoint_mean"],
				Distance:        mc.Distance,
			}
			logger.Debug("sweep point", "index", idx+1, "of", sweep.NumSteps, "probability", p)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	logger.Info("sweep complete", "points", sweep.NumSteps, "trials", sweep.Trials)
	return results, nil
}

// baseSeed resolves a zero seed once so every sweep point derives its own
// stream from the same base.
func baseSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	if s := uint64(time.Now().UnixNano()); s != 0 {
		return s
	}
	return 1
}

func seedAt(base uint64, i int) uint64 {
	return base + uint64(i)
}

// MonteCarloConfig drops Trials random paths through a fresh manual session.
type MonteCarloConfig struct {
	Probability float64
	Steps       int
	Trials      int
	Seed        uint64
}

type MonteCarloResult struct {
	Histogram     []int
	Probabilities []float64
	Expected      []float64
	Distance      float64
	Metrics       map[string]float64
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) (*MonteCarloResult, error) {
	params := sim.Parameters{
		RightProbability: cfg.Probability,
		TotalUnits:       float64(cfg.Trials),
		Steps:            cfg.Steps,
	}
	s := sim.New(params)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	s.SwitchMode(true)

	rng := NewRand(cfg.Seed)
	for trial := 0; trial < cfg.Trials; trial++ {
		if trial%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s.Drop(rng)
	}

	probs := s.Probabilities()
	expected := make([]float64, len(probs))
	for k, p := range probs {
		expected[k] = p * float64(cfg.Trials)
	}
	hist := s.Histogram()
	return &MonteCarloResult{
		Histogram:     hist,
		Probabilities: probs,
		Expected:      expected,
		Distance:      metrics.TotalVariation(hist, probs),
		Metrics:       s.Metrics(),
	}, nil
}

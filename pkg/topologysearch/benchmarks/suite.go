// Package benchmarks compares NSGA-II against a random search with the same
// evaluation budget on synthetic RSU scenarios.
package benchmarks

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/util"
)

// RandomSearch names the baseline in results
const RandomSearch = "RandomSearch"

// Result holds the quality of one algorithm on one case
type Result struct {
	Case        string        `json:"case"`
	Algorithm   string        `json:"algorithm"`
	Evaluations int64         `json:"evaluations"`
	FrontSize   int           `json:"frontSize"`
	Hypervolume float64       `json:"hypervolume"`
	// IGD is nil when the algorithm found no feasible network
	IGD         *float64      `json:"igd,omitempty"`
	Spacing     float64       `json:"spacing"`
	Duration    time.Duration `json:"duration"`
}

// TestSuite runs a set of benchmark cases
type TestSuite struct {
	logger klog.Logger
	args   *v1alpha1.SearchArgs
	cases  []Case
}

// NewTestSuite creates a new benchmark test suite. Area arguments are
// replaced by the area of every case.
func NewTestSuite(logger klog.Logger, args *v1alpha1.SearchArgs) *TestSuite {
	return &TestSuite{
		logger: logger,
		args:   args,
	}
}

// AddCase adds a case to the test suite
func (ts *TestSuite) AddCase(c Case) {
	ts.cases = append(ts.cases, c)
}

// AddStandardCases adds the cases of StandardCases
func (ts *TestSuite) AddStandardCases() {
	for _, c := range StandardCases() {
		ts.AddCase(c)
	}
}

// Run executes every case. Plots and a results.yaml summary are written to
// outputDir unless it is empty.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Result, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var results []Result
	for _, c := range ts.cases {
		caseResults, err := ts.runCase(ctx, c, outputDir)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
		results = append(results, caseResults...)
	}

	if outputDir != "" {
		data, err := yaml.Marshal(results)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(outputDir, "results.yaml"), data, 0644); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (ts *TestSuite) runCase(ctx context.Context, c Case, outputDir string) ([]Result, error) {
	logger := ts.logger.WithValues("case", c.Name)
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}

	args := ts.args.DeepCopy()
	args.AreaWidth = c.Area
	args.AreaHeight = c.Area

	logger.Info("Running benchmark", "algorithm", algorithms.Name)
	start := time.Now()
	searcher, err := topologysearch.New(klog.NewContext(ctx, logger), args, registry)
	if err != nil {
		return nil, err
	}
	searchResult, err := searcher.Run(ctx)
	if err != nil {
		return nil, err
	}
	nsgaDuration := time.Since(start)
	nsgaFront := algorithms.Values(searchResult.Front)

	logger.Info("Running benchmark", "algorithm", RandomSearch, "evaluations", searchResult.Evaluations)
	start = time.Now()
	randomFront, err := ts.randomSearch(ctx, logger, args, registry, searchResult.Evaluations)
	if err != nil {
		return nil, err
	}
	randomDuration := time.Since(start)

	ref := ReferencePoint(nsgaFront, randomFront)
	reference := nonDominated(append(append([]framework.ObjectiveSpacePoint{}, nsgaFront...), randomFront...))

	results := []Result{
		newResult(c.Name, algorithms.Name, searchResult.Evaluations, nsgaFront, reference, ref, nsgaDuration),
		newResult(c.Name, RandomSearch, searchResult.Evaluations, randomFront, reference, ref, randomDuration),
	}
	for _, r := range results {
		logger.Info("Benchmark result",
			"algorithm", r.Algorithm,
			"frontSize", r.FrontSize,
			"hypervolume", fmt.Sprintf("%.2f", r.Hypervolume),
			"igd", r.FormatIGD(),
			"spacing", fmt.Sprintf("%.4f", r.Spacing))
	}

	if outputDir != "" {
		ts.plot(logger, c, registry, searchResult, outputDir)
	}
	return results, nil
}

// randomSearch evaluates budget random networks and returns their first front
func (ts *TestSuite) randomSearch(ctx context.Context, logger klog.Logger, args *v1alpha1.SearchArgs, registry *framework.Registry, budget int64) ([]framework.ObjectiveSpacePoint, error) {
	rng := rand.New(rand.NewSource(uint64(args.Seed) + 1))
	problem := topologysearch.NewTopologyProblem(logger, args, registry.Clone(), rng, nil)

	var feasible []framework.ObjectiveSpacePoint
	for i := int64(0); i < budget; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chromosome, err := problem.Random()
		if err != nil {
			return nil, err
		}
		value, err := problem.Evaluate(chromosome)
		if err != nil {
			return nil, err
		}
		if !math.IsInf(value[0], 1) {
			feasible = append(feasible, value)
		}
	}
	return nonDominated(feasible), nil
}

func (ts *TestSuite) plot(logger klog.Logger, c Case, registry *framework.Registry, result *topologysearch.Result, outputDir string) {
	base := filepath.Join(outputDir, c.Name)
	if err := util.PlotParetoFront(result.Population, c.Name, base+"_front.html"); err != nil {
		logger.Error(err, "Failed to plot front")
	}
	if len(result.Front) == 0 {
		return
	}
	network, err := topology.Decode(result.Front[0].Chromosome, registry)
	if err != nil {
		logger.Error(err, "Failed to decode best topology")
		return
	}
	if err := util.PlotNetwork(network, registry.Tasks(), base+"_network.html"); err != nil {
		logger.Error(err, "Failed to plot network")
	}
}

func newResult(caseName, algorithm string, evaluations int64, front, reference []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint, duration time.Duration) Result {
	r := Result{
		Case:        caseName,
		Algorithm:   algorithm,
		Evaluations: evaluations,
		FrontSize:   len(front),
		Hypervolume: Hypervolume2D(front, ref),
		Spacing:     Spacing(front),
		Duration:    duration,
	}
	// YAML cannot carry +Inf
	if igd := IGD(front, reference); !math.IsInf(igd, 0) {
		r.IGD = &igd
	}
	return r
}

// FormatIGD prints IGD with four decimals, or "undefined" without a front
func (r Result) FormatIGD() string {
	if r.IGD == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", *r.IGD)
}

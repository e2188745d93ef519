/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package options provides the flags used for the rsuplacer commands.
package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch"
)

// SearchFlags binds the search arguments to flags. Only flags set on the
// command line override arguments read from a scenario file.
type SearchFlags struct {
	args v1alpha1.SearchArgs
}

// AddFlags adds flags for the search arguments to the specified FlagSet
func (f *SearchFlags) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.args.PopulationSize, "population-size", topologysearch.DefaultPopulationSize, "Number of topologies kept per generation.")
	fs.IntVar(&f.args.MaxGenerations, "generations", topologysearch.DefaultMaxGenerations, "Number of NSGA-II generations. 0 uses the default.")
	fs.Float64Var(&f.args.CrossoverProbability, "crossover-probability", topologysearch.DefaultCrossoverProbability, "Probability of single-point crossover per parent pair. 0 uses the default.")
	fs.Float64Var(&f.args.MutationProbability, "mutation-probability", topologysearch.DefaultMutationProbability, "Probability of mutating each child. 0 uses the default.")
	fs.IntVar(&f.args.TournamentSize, "tournament-size", topologysearch.DefaultTournamentSize, "Number of contenders per tournament selection.")
	fs.Float64Var(&f.args.AreaWidth, "area-width", topologysearch.DefaultAreaSize, "Width of the area RSUs may be placed in.")
	fs.Float64Var(&f.args.AreaHeight, "area-height", topologysearch.DefaultAreaSize, "Height of the area RSUs may be placed in.")
	fs.Int64Var(&f.args.Seed, "seed", 0, "Seed of the random source. Runs with equal seeds and inputs are identical.")
	fs.IntVar(&f.args.MaxSimulationTicks, "max-simulation-ticks", 0, "Upper bound on ticks per offloading simulation. 0 uses the default, negative disables the bound.")
	fs.BoolVar(&f.args.IncludeCurrentState, "include-current-state", false, "Seed the initial population with the topology of the scenario.")
	fs.IntVar(&f.args.TopSolutions, "top-solutions", topologysearch.DefaultTopSolutions, "Number of solutions logged at the end of a run.")
}

// Apply returns base overridden by every flag set on the command line, with
// remaining zero values defaulted. A nil base starts from empty arguments.
func (f *SearchFlags) Apply(base *v1alpha1.SearchArgs, fs *pflag.FlagSet) *v1alpha1.SearchArgs {
	args := &v1alpha1.SearchArgs{}
	if base != nil {
		args = base.DeepCopy()
	}

	setters := map[string]func(){
		"population-size":       func() { args.PopulationSize = f.args.PopulationSize },
		"generations":           func() { args.MaxGenerations = f.args.MaxGenerations },
		"crossover-probability": func() { args.CrossoverProbability = f.args.CrossoverProbability },
		"mutation-probability":  func() { args.MutationProbability = f.args.MutationProbability },
		"tournament-size":       func() { args.TournamentSize = f.args.TournamentSize },
		"area-width":            func() { args.AreaWidth = f.args.AreaWidth },
		"area-height":           func() { args.AreaHeight = f.args.AreaHeight },
		"seed":                  func() { args.Seed = f.args.Seed },
		"max-simulation-ticks":  func() { args.MaxSimulationTicks = f.args.MaxSimulationTicks },
		"include-current-state": func() { args.IncludeCurrentState = f.args.IncludeCurrentState },
		"top-solutions":         func() { args.TopSolutions = f.args.TopSolutions },
	}
	fs.Visit(func(flag *pflag.Flag) {
		if set, ok := setters[flag.Name]; ok {
			set()
		}
	})

	args.Kind = "SearchArgs"
	args.APIVersion = v1alpha1.SchemeGroupVersion.String()
	topologysearch.SetDefaults_SearchArgs(args)
	return args
}

// SearchOptions configures the search command
type SearchOptions struct {
	SearchFlags

	ScenarioFile string
	ReportFile   string
	ReportName   string
	PlotDir      string
	MetricsFile  string
}

// NewSearchOptions returns options with the report named after the command
func NewSearchOptions() *SearchOptions {
	return &SearchOptions{ReportName: "rsuplacer"}
}

// AddFlags adds flags for the search command to the specified FlagSet
func (o *SearchOptions) AddFlags(fs *pflag.FlagSet) {
	o.SearchFlags.AddFlags(fs)
	fs.StringVar(&o.ScenarioFile, "scenario", o.ScenarioFile, "Scenario file with RSUs, edge servers, tasks and optional search arguments.")
	fs.StringVar(&o.ReportFile, "output", o.ReportFile, "File the TopologyFront report is written to. Empty prints it to stdout.")
	fs.StringVar(&o.ReportName, "report-name", o.ReportName, "Name of the TopologyFront report.")
	fs.StringVar(&o.PlotDir, "plot-dir", o.PlotDir, "Directory for HTML plots of the front and the best topology. Empty disables plotting.")
	fs.StringVar(&o.MetricsFile, "metrics-output", o.MetricsFile, "File the search metrics are written to in the Prometheus text format.")
}

// Validate checks options that do not depend on the scenario
func (o *SearchOptions) Validate() error {
	if o.ScenarioFile == "" {
		return fmt.Errorf("--scenario is required")
	}
	if o.ReportName == "" {
		return fmt.Errorf("--report-name must not be empty")
	}
	return nil
}

// BenchmarkOptions configures the benchmark command
type BenchmarkOptions struct {
	SearchFlags

	OutputDir string
	Cases     []string
}

// AddFlags adds flags for the benchmark command to the specified FlagSet
func (o *BenchmarkOptions) AddFlags(fs *pflag.FlagSet) {
	o.SearchFlags.AddFlags(fs)
	fs.StringVar(&o.OutputDir, "output-dir", "./results", "Directory for benchmark plots and results.yaml. Empty disables output files.")
	fs.StringSliceVar(&o.Cases, "cases", nil, "Names of the standard cases to run. Empty runs all of them.")
}

// GenerateOptions configures the generate command
type GenerateOptions struct {
	Case   string
	Output string
}

// AddFlags adds flags for the generate command to the specified FlagSet
func (o *GenerateOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Case, "case", "Small", "Name of the standard case to write as a scenario.")
	fs.StringVarP(&o.Output, "output", "o", "scenario.yaml", "Scenario file to write.")
}

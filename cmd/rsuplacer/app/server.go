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

// Package app implements the rsuplacer commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/component-base/version"
	"k8s.io/klog/v2"
	"k8s.io/utils/set"
	"sigs.k8s.io/yaml"

	"github.com/edgeplace/rsuplacer/cmd/rsuplacer/app/options"
	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/metrics"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/benchmarks"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/scenario"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/util"
)

// NewRSUPlacerCommand creates the root command with its subcommands
func NewRSUPlacerCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsuplacer",
		Short: "rsuplacer searches RSU placements and edge server links",
		Long: `rsuplacer runs NSGA-II over roadside unit topologies. Every candidate is
scored by replaying task offloading on it, minimizing the worst computation
time and the worst migration time of any task.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(
		NewSearchCommand(out),
		NewBenchmarkCommand(out),
		NewGenerateCommand(out),
		NewVersionCommand(out),
	)
	return cmd
}

// NewSearchCommand creates the search subcommand
func NewSearchCommand(out io.Writer) *cobra.Command {
	o := options.NewSearchOptions()
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search Pareto-optimal topologies for a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return RunSearch(ctx, o, cmd, out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// RunSearch loads the scenario, runs the search and writes the report
func RunSearch(ctx context.Context, o *options.SearchOptions, cmd *cobra.Command, out io.Writer) error {
	logger := klog.FromContext(ctx)

	file, err := scenario.Load(o.ScenarioFile)
	if err != nil {
		return err
	}
	registry, err := file.Registry()
	if err != nil {
		return fmt.Errorf("%s: %w", o.ScenarioFile, err)
	}
	args := o.Apply(file.Search, cmd.Flags())

	promRegistry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(promRegistry)
	if err != nil {
		return err
	}

	searcher, err := topologysearch.New(ctx, args, registry)
	if err != nil {
		return err
	}
	result, err := searcher.WithMetrics(recorder).Run(ctx)
	if err != nil {
		return err
	}

	report := topologysearch.NewReport(o.ReportName, v1alpha1.TopologyFrontSpec{
		Scenario: o.ScenarioFile,
		Args:     *args,
	}, result, time.Now())
	if o.ReportFile == "" {
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		if err := topologysearch.WriteReport(report, o.ReportFile); err != nil {
			return err
		}
		logger.Info("Report written", "path", o.ReportFile, "solutions", len(report.Status.Solutions))
	}

	if o.PlotDir != "" {
		if err := plotSearch(o.PlotDir, file, result); err != nil {
			return err
		}
		logger.Info("Plots written", "dir", o.PlotDir)
	}

	if o.MetricsFile != "" {
		if err := metrics.WriteTextFile(promRegistry, o.MetricsFile); err != nil {
			return err
		}
	}
	return nil
}

func plotSearch(dir string, file *scenario.File, result *topologysearch.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}
	registry, err := file.Registry()
	if err != nil {
		return err
	}
	if err := util.PlotNetwork(registry.Network(), registry.Tasks(), filepath.Join(dir, "scenario.html")); err != nil {
		return err
	}
	if len(result.Front) == 0 {
		return nil
	}
	if err := util.PlotParetoFront(result.Population, fmt.Sprintf("%d generations", result.Generations), filepath.Join(dir, "front.html")); err != nil {
		return err
	}
	best, err := topology.Decode(result.Front[0].Chromosome, registry)
	if err != nil {
		return err
	}
	return util.PlotNetwork(best, registry.Tasks(), filepath.Join(dir, "best.html"))
}

// NewBenchmarkCommand creates the benchmark subcommand
func NewBenchmarkCommand(out io.Writer) *cobra.Command {
	o := &options.BenchmarkOptions{}
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Compare NSGA-II with random search on synthetic scenarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			suite := benchmarks.NewTestSuite(klog.FromContext(ctx), o.Apply(nil, cmd.Flags()))
			wanted := set.New(o.Cases...)
			known := set.New[string]()
			for _, c := range benchmarks.StandardCases() {
				known.Insert(c.Name)
				if wanted.Len() == 0 || wanted.Has(c.Name) {
					suite.AddCase(c)
				}
			}
			if unknown := wanted.Difference(known); unknown.Len() > 0 {
				return fmt.Errorf("unknown cases %v, known cases are %v", unknown.SortedList(), known.SortedList())
			}

			results, err := suite.Run(ctx, o.OutputDir)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-14s %-13s front=%-3d hv=%-12.2f igd=%-10s spacing=%.4f\n",
					r.Case, r.Algorithm, r.FrontSize, r.Hypervolume, r.FormatIGD(), r.Spacing)
			}
			return nil
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// NewGenerateCommand creates the generate subcommand, which writes a standard
// benchmark case as a scenario file
func NewGenerateCommand(out io.Writer) *cobra.Command {
	o := &options.GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic scenario file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range benchmarks.StandardCases() {
				if c.Name != o.Case {
					continue
				}
				registry, err := c.Registry()
				if err != nil {
					return err
				}
				if err := scenario.FromRegistry(registry).Save(o.Output); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote case %s to %s\n", c.Name, o.Output)
				return nil
			}
			return fmt.Errorf("unknown case %q", o.Case)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// NewVersionCommand prints the build version
func NewVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(out, "rsuplacer version %s\n", version.Get())
		},
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

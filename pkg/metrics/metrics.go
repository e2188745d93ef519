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

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "rsuplacer"

	// LabelResult is the outcome of a fitness evaluation
	LabelResult = "result"
)

// Recorder holds the metrics of topology search runs
type Recorder struct {
	evaluations     *prometheus.CounterVec
	generations     prometheus.Counter
	simulationTicks prometheus.Histogram
	paretoFrontSize prometheus.Gauge
}

// NewRecorder creates the search metrics and registers them with the provided registry
func NewRecorder(registry prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fitness_evaluations_total",
				Help:      "Total number of topology fitness evaluations by result",
			},
			[]string{LabelResult},
		),
		generations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of completed NSGA-II generations",
			},
		),
		simulationTicks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "simulation_ticks",
				Help:      "Ticks needed by an offloading simulation to complete every task",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		paretoFrontSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pareto_front_size",
				Help:      "Number of individuals on the first front of the current population",
			},
		),
	}

	for name, c := range map[string]prometheus.Collector{
		"fitness_evaluations_total": r.evaluations,
		"generations_total":         r.generations,
		"simulation_ticks":          r.simulationTicks,
		"pareto_front_size":         r.paretoFrontSize,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register %s metric: %w", name, err)
		}
	}
	return r, nil
}

// ObserveEvaluation counts one fitness evaluation; ticks is recorded when positive
func (r *Recorder) ObserveEvaluation(result string, ticks int) {
	r.evaluations.WithLabelValues(result).Inc()
	if ticks > 0 {
		r.simulationTicks.Observe(float64(ticks))
	}
}

// ObserveGeneration records a completed generation and the size of its first front
func (r *Recorder) ObserveGeneration(frontSize int) {
	r.generations.Inc()
	r.paretoFrontSize.Set(float64(frontSize))
}

// WriteTextFile writes every gathered metric family in the text exposition format.
// The file is replaced atomically.
func WriteTextFile(gatherer prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	r, err := NewRecorder(registry)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	r.ObserveEvaluation("feasible", 12)
	r.ObserveEvaluation("feasible", 30)
	r.ObserveEvaluation("infeasible", 0)
	r.ObserveGeneration(4)
	r.ObserveGeneration(6)

	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("feasible")); got != 2 {
		t.Errorf("Expected 2 feasible evaluations, got %v", got)
	}
	if got := testutil.ToFloat64(r.evaluations.WithLabelValues("infeasible")); got != 1 {
		t.Errorf("Expected 1 infeasible evaluation, got %v", got)
	}
	if got := testutil.ToFloat64(r.generations); got != 2 {
		t.Errorf("Expected 2 generations, got %v", got)
	}
	if got := testutil.ToFloat64(r.paretoFrontSize); got != 6 {
		t.Errorf("Expected front size 6, got %v", got)
	}
	if got := testutil.CollectAndCount(r.simulationTicks); got != 1 {
		t.Errorf("Expected 1 histogram series, got %d", got)
	}
}

func TestNewRecorderTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	if _, err := NewRecorder(registry); err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if _, err := NewRecorder(registry); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}

func TestWriteTextFile(t *testing.T) {
	registry := prometheus.NewRegistry()
	r, err := NewRecorder(registry)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	r.ObserveGeneration(3)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := WriteTextFile(registry, path); err != nil {
		t.Fatalf("WriteTextFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"rsuplacer_generations_total 1", "rsuplacer_pareto_front_size 3"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output misses %q:\n%s", want, data)
		}
	}
}

func TestWriteTextFileReplacesContent(t *testing.T) {
	registry := prometheus.NewRegistry()
	r, err := NewRecorder(registry)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := os.WriteFile(path, []byte("stale_metric 42\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r.ObserveGeneration(5)
	if err := WriteTextFile(registry, path); err != nil {
		t.Fatalf("WriteTextFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "stale_metric") {
		t.Errorf("Expected stale content to be replaced, got:\n%s", data)
	}
	if !strings.Contains(string(data), "rsuplacer_pareto_front_size 5") {
		t.Errorf("output misses front size:\n%s", data)
	}

	if err := WriteTextFile(registry, filepath.Join(t.TempDir(), "missing", "metrics.prom")); err == nil {
		t.Errorf("Expected an error for a missing directory, got nil")
	}
}

package benchmarks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

func TestCaseRegistry(t *testing.T) {
	for _, c := range StandardCases() {
		t.Run(c.Name, func(t *testing.T) {
			registry, err := c.Registry()
			if err != nil {
				t.Fatalf("Registry: %v", err)
			}
			if len(registry.RSUs()) != c.RSUs || len(registry.EdgeServers()) != c.EdgeServers || len(registry.Tasks()) != c.Tasks {
				t.Errorf("unexpected entity counts %d/%d/%d", len(registry.RSUs()), len(registry.EdgeServers()), len(registry.Tasks()))
			}
			if got := registry.Network().EdgeServers(); got != c.EdgeServers {
				t.Errorf("Expected %d linked edge servers, got %d", c.EdgeServers, got)
			}

			again, err := c.Registry()
			if err != nil {
				t.Fatalf("Registry: %v", err)
			}
			for i, task := range registry.Tasks() {
				other := again.Tasks()[i]
				if task.OriginX != other.OriginX || task.OriginY != other.OriginY || task.Type != other.Type {
					t.Errorf("task %s differs between generations", task.ID)
				}
			}
		})
	}

	if _, err := (Case{Name: "Invalid", RSUs: 1, EdgeServers: 2}).Registry(); err == nil {
		t.Error("Expected an error for more edge servers than RSUs")
	}
}

func TestBenchmarkSuite(t *testing.T) {
	args := &v1alpha1.SearchArgs{
		PopulationSize: 12,
		MaxGenerations: 4,
		Seed:           1,
	}
	topologysearch.SetDefaults_SearchArgs(args)

	suite := NewTestSuite(klog.NewKlogr(), args)
	suite.AddCase(StandardCases()[0])

	dir := t.TempDir()
	results, err := suite.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Failed to run benchmark suite: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Algorithm != algorithms.Name || results[1].Algorithm != RandomSearch {
		t.Errorf("unexpected algorithms %s, %s", results[0].Algorithm, results[1].Algorithm)
	}
	for _, r := range results {
		if r.Evaluations != results[0].Evaluations {
			t.Errorf("%s used %d evaluations, want %d", r.Algorithm, r.Evaluations, results[0].Evaluations)
		}
		if r.Hypervolume < 0 {
			t.Errorf("%s has negative hypervolume %v", r.Algorithm, r.Hypervolume)
		}
	}
	if results[0].FrontSize == 0 {
		t.Error("Expected a non-empty NSGA-II front")
	}

	for _, name := range []string{"results.yaml", "Small_front.html", "Small_network.html"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to be written: %v", name, err)
		}
	}
}

func TestBenchmarkSuiteCancelled(t *testing.T) {
	args := &v1alpha1.SearchArgs{PopulationSize: 4, MaxGenerations: 2}
	topologysearch.SetDefaults_SearchArgs(args)
	suite := NewTestSuite(klog.NewKlogr(), args)
	suite.AddStandardCases()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := suite.Run(ctx, ""); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}

func TestResultWithoutFront(t *testing.T) {
	reference := []framework.ObjectiveSpacePoint{{1, 2}, {2, 1}}
	ref := framework.ObjectiveSpacePoint{3, 3}

	testCases := []struct {
		name    string
		front   []framework.ObjectiveSpacePoint
		wantIGD string
	}{
		{
			name:    "EmptyFront",
			wantIGD: "undefined",
		},
		{
			name:    "ReferenceFront",
			front:   reference,
			wantIGD: "0.0000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newResult("Case", RandomSearch, 10, tc.front, reference, ref, time.Second)
			if got := r.FormatIGD(); got != tc.wantIGD {
				t.Errorf("Expected %v, got %v", tc.wantIGD, got)
			}

			data, err := yaml.Marshal([]Result{r})
			if err != nil {
				t.Fatalf("Failed to marshal results: %v", err)
			}
			if hasIGD := strings.Contains(string(data), "igd:"); hasIGD != (tc.front != nil) {
				t.Errorf("Expected igd field present = %v, got:\n%s", tc.front != nil, data)
			}
		})
	}
}

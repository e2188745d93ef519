package util

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

func TestPlotParetoFront(t *testing.T) {
	population := []*algorithms.Individual{
		{Value: framework.ObjectiveSpacePoint{5, 20}, Rank: 1},
		{Value: framework.ObjectiveSpacePoint{10, 5}, Rank: 1},
		{Value: framework.ObjectiveSpacePoint{12, 25}, Rank: 2},
		{Value: framework.ObjectiveSpacePoint{math.Inf(1), math.Inf(1)}, Rank: 3},
	}

	filename := filepath.Join(t.TempDir(), "front.html")
	if err := PlotParetoFront(population, "seed 1", filename); err != nil {
		t.Fatalf("PlotParetoFront: %v", err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Rank 1") {
		t.Error("Expected the first front series in the output")
	}
}

func TestPlotParetoFrontErrors(t *testing.T) {
	dir := t.TempDir()
	penalized := []*algorithms.Individual{
		{Value: framework.ObjectiveSpacePoint{math.Inf(1), math.Inf(1)}, Rank: 1},
	}
	if err := PlotParetoFront(penalized, "", filepath.Join(dir, "a.html")); err == nil {
		t.Error("Expected an error for a front without feasible individuals")
	}
	threeD := []*algorithms.Individual{{Value: framework.ObjectiveSpacePoint{1, 2, 3}, Rank: 1}}
	if err := PlotParetoFront(threeD, "", filepath.Join(dir, "b.html")); err == nil {
		t.Error("Expected an error for 3D values")
	}
}

func TestPlotNetwork(t *testing.T) {
	network := framework.Network{
		{ID: "ap", X: 0, Y: 0, DTR: 10},
		{ID: "edge", X: 10, Y: 0, DTR: 10, ES: &framework.ES{ID: "es-1", VMNumber: 1, VMCapacity: 100}},
	}
	tasks := []*framework.Task{framework.NewTask("t", 1, 1, framework.Computation, 3, 4)}

	filename := filepath.Join(t.TempDir(), "network.html")
	if err := PlotNetwork(network, tasks, filename); err != nil {
		t.Fatalf("PlotNetwork: %v", err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "edge (es-1)") {
		t.Error("Expected the edge server label in the output")
	}
	if err := PlotNetwork(nil, nil, filename); err == nil {
		t.Error("Expected an error for an empty network")
	}
}

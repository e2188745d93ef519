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

package topologysearch

import (
	"fmt"
	"os"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/topology"
)

// NewReport converts a search result into a TopologyFront
func NewReport(name string, spec v1alpha1.TopologyFrontSpec, result *Result, now time.Time) *v1alpha1.TopologyFront {
	completion := metav1.NewTime(now)
	report := &v1alpha1.TopologyFront{
		TypeMeta: metav1.TypeMeta{
			Kind:       "TopologyFront",
			APIVersion: v1alpha1.SchemeGroupVersion.String(),
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			CreationTimestamp: completion,
			Labels: map[string]string{
				"rsuplacer.edgeplace.io/algorithm": "nsga-ii",
			},
		},
		Spec: spec,
		Status: v1alpha1.TopologyFrontStatus{
			Generations:    result.Generations,
			Evaluations:    result.Evaluations,
			CompletionTime: &completion,
		},
	}

	for _, ind := range result.Front {
		report.Status.Solutions = append(report.Status.Solutions, v1alpha1.TopologySolution{
			MaxComputationTime: ind.Value[0],
			MaxMigrationTime:   ind.Value[1],
			Placements:         placements(ind.Chromosome),
		})
	}
	return report
}

func placements(chromosome topology.Chromosome) []v1alpha1.RSUPlacement {
	out := make([]v1alpha1.RSUPlacement, 0, len(chromosome))
	index := make(map[string]int)
	for _, gene := range chromosome {
		if gene.Kind != topology.PlacementKind {
			continue
		}
		index[gene.RSUID] = len(out)
		out = append(out, v1alpha1.RSUPlacement{RSU: gene.RSUID, X: gene.X, Y: gene.Y})
	}
	for _, gene := range chromosome {
		if gene.Kind != topology.LinkKind {
			continue
		}
		if i, ok := index[gene.RSUID]; ok {
			out[i].EdgeServer = gene.ESID
		}
	}
	return out
}

// WriteReport writes the report as YAML
func WriteReport(report *v1alpha1.TopologyFront, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

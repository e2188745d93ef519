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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// SearchArgs holds arguments used to configure the topology search
type SearchArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Defaulting treats a zero value as unset for every numeric field below
	// except Seed, so a configured 0 selects the default. Callers that need a
	// zero generation budget or a zero probability set it after defaulting.

	// PopulationSize is the number of topologies kept per generation
	PopulationSize int `json:"populationSize,omitempty"`
	// MaxGenerations is the fixed generation budget. 0 selects the default.
	MaxGenerations int `json:"maxGenerations,omitempty"`

	// CrossoverProbability and MutationProbability lie in [0,1]. 0 selects the default.
	CrossoverProbability float64 `json:"crossoverProbability,omitempty"`
	MutationProbability  float64 `json:"mutationProbability,omitempty"`
	TournamentSize       int     `json:"tournamentSize,omitempty"`

	// AreaWidth and AreaHeight bound RSU coordinates produced by the search.
	// Both must lie in [1, math.MaxInt32].
	AreaWidth  float64 `json:"areaWidth,omitempty"`
	AreaHeight float64 `json:"areaHeight,omitempty"`

	// Seed makes runs reproducible
	Seed int64 `json:"seed,omitempty"`

	// MaxSimulationTicks bounds a single offloading simulation. Negative disables the bound.
	MaxSimulationTicks int `json:"maxSimulationTicks,omitempty"`

	// IncludeCurrentState seeds the initial population with the loaded topology
	IncludeCurrentState bool `json:"includeCurrentState,omitempty"`

	// TopSolutions is the number of solutions logged at the end of a run
	TopSolutions int `json:"topSolutions,omitempty"`
}

// +genclient
// +genclient:nonNamespaced
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// TopologyFront reports the Pareto-optimal topologies found by one search run
type TopologyFront struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   TopologyFrontSpec   `json:"spec,omitempty"`
	Status TopologyFrontStatus `json:"status,omitempty"`
}

// TopologyFrontSpec records what was searched
type TopologyFrontSpec struct {
	// Scenario is the scenario file the registry was loaded from
	Scenario string `json:"scenario,omitempty"`

	// Args are the defaulted search arguments of the run
	Args SearchArgs `json:"args"`
}

// TopologyFrontStatus holds the outcome of the run
type TopologyFrontStatus struct {
	// Solutions is the first front, ordered by max computation time
	Solutions []TopologySolution `json:"solutions,omitempty"`

	// Generations actually completed
	Generations int `json:"generations,omitempty"`

	// Evaluations counts fitness evaluations, feasible or not
	Evaluations int64 `json:"evaluations,omitempty"`

	CompletionTime *metav1.Time `json:"completionTime,omitempty"`
}

// TopologySolution is one Pareto-optimal topology
type TopologySolution struct {
	// MaxComputationTime is the worst service time, in ticks
	MaxComputationTime float64 `json:"maxComputationTime"`

	// MaxMigrationTime is the worst accumulated migration time, in ticks
	MaxMigrationTime float64 `json:"maxMigrationTime"`

	// Placements lists every RSU of the topology
	Placements []RSUPlacement `json:"placements"`
}

// RSUPlacement is the position of one RSU and the edge server it hosts, if any
type RSUPlacement struct {
	RSU string  `json:"rsu"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`

	// EdgeServer is empty for access points
	EdgeServer string `json:"edgeServer,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// TopologyFrontList contains a list of TopologyFront
type TopologyFrontList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []TopologyFront `json:"items"`
}

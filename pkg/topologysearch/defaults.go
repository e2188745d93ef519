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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/offloading"
)

const (
	DefaultPopulationSize       = 50
	DefaultMaxGenerations       = 100
	DefaultCrossoverProbability = 0.9
	DefaultMutationProbability  = 0.1
	DefaultTournamentSize       = 2
	DefaultAreaSize             = 100
	DefaultTopSolutions         = 5
)

// NewScheme returns a scheme with the API types and their defaulting functions
func NewScheme() (*runtime.Scheme, error) {
	scheme := runtime.NewScheme()
	if err := v1alpha1.AddToScheme(scheme); err != nil {
		return nil, err
	}
	if err := addDefaultingFuncs(scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "name", Name)
	scheme.AddTypeDefaultingFunc(&v1alpha1.SearchArgs{}, func(obj interface{}) {
		SetDefaults_SearchArgs(obj.(*v1alpha1.SearchArgs))
	})
	return nil
}

// SetDefaults_SearchArgs fills zero-valued arguments. Seed and
// IncludeCurrentState keep their zero values.
func SetDefaults_SearchArgs(obj runtime.Object) {
	args := obj.(*v1alpha1.SearchArgs)

	if args.PopulationSize == 0 {
		args.PopulationSize = DefaultPopulationSize
	}
	if args.MaxGenerations == 0 {
		args.MaxGenerations = DefaultMaxGenerations
	}
	if args.CrossoverProbability == 0 {
		args.CrossoverProbability = DefaultCrossoverProbability
	}
	if args.MutationProbability == 0 {
		args.MutationProbability = DefaultMutationProbability
	}
	if args.TournamentSize == 0 {
		args.TournamentSize = DefaultTournamentSize
	}
	if args.AreaWidth == 0 {
		args.AreaWidth = DefaultAreaSize
	}
	if args.AreaHeight == 0 {
		args.AreaHeight = DefaultAreaSize
	}
	if args.MaxSimulationTicks == 0 {
		args.MaxSimulationTicks = offloading.DefaultMaxTicks
	}
	if args.TopSolutions == 0 {
		args.TopSolutions = DefaultTopSolutions
	}
}

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
	"math"

	"k8s.io/apimachinery/pkg/runtime"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/edgeplace/rsuplacer/pkg/api/v1alpha1"
)

// ValidateSearchArgs validates the topology search arguments as given. It
// does not default them, so programmatic callers may run zero generations.
func ValidateSearchArgs(obj runtime.Object) error {
	args, ok := obj.(*v1alpha1.SearchArgs)
	if !ok {
		return fmt.Errorf("want args to be of type SearchArgs, got %T", obj)
	}

	var errs []error
	if args.PopulationSize < 2 {
		errs = append(errs, fmt.Errorf("population size must be at least 2, got %d", args.PopulationSize))
	}
	if args.MaxGenerations < 0 {
		errs = append(errs, fmt.Errorf("max generations must not be negative, got %d", args.MaxGenerations))
	}
	if !(args.CrossoverProbability >= 0 && args.CrossoverProbability <= 1) {
		errs = append(errs, fmt.Errorf("crossover probability must be between 0 and 1, got %v", args.CrossoverProbability))
	}
	if !(args.MutationProbability >= 0 && args.MutationProbability <= 1) {
		errs = append(errs, fmt.Errorf("mutation probability must be between 0 and 1, got %v", args.MutationProbability))
	}
	if args.TournamentSize < 1 || args.TournamentSize > args.PopulationSize {
		errs = append(errs, fmt.Errorf("tournament size must be between 1 and the population size %d, got %d", args.PopulationSize, args.TournamentSize))
	}
	if !(args.AreaWidth >= 1) || !(args.AreaHeight >= 1) {
		errs = append(errs, fmt.Errorf("area must be at least 1x1, got %vx%v", args.AreaWidth, args.AreaHeight))
	}
	// coordinates are drawn with integer arithmetic
	if args.AreaWidth > math.MaxInt32 || args.AreaHeight > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("area must be at most %dx%d, got %vx%v", math.MaxInt32, math.MaxInt32, args.AreaWidth, args.AreaHeight))
	}
	if args.TopSolutions < 0 {
		errs = append(errs, fmt.Errorf("top solutions must not be negative, got %d", args.TopSolutions))
	}

	return utilerrors.NewAggregate(errs)
}

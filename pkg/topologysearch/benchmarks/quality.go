package benchmarks

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// IGD is the inverted generational distance: the mean Euclidean distance from
// every reference point to its nearest obtained point. It is +Inf when
// nothing was obtained.
func IGD(obtained, reference []framework.ObjectiveSpacePoint) float64 {
	if len(reference) == 0 {
		return 0
	}
	if len(obtained) == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for _, ref := range reference {
		minDist := math.Inf(1)
		for _, point := range obtained {
			if d := floats.Distance(ref, point, 2); d < minDist {
				minDist = d
			}
		}
		sum += minDist
	}
	return sum / float64(len(reference))
}

// Hypervolume2D is the area dominated by a two-objective minimization front
// and bounded by the reference point. Points not strictly better than the
// reference in both objectives add nothing.
func Hypervolume2D(front []framework.ObjectiveSpacePoint, ref framework.ObjectiveSpacePoint) float64 {
	if len(ref) != 2 {
		return 0
	}
	points := make([]framework.ObjectiveSpacePoint, 0, len(front))
	for _, p := range front {
		if len(p) == 2 && p[0] < ref[0] && p[1] < ref[1] {
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i][0] != points[j][0] {
			return points[i][0] < points[j][0]
		}
		return points[i][1] < points[j][1]
	})

	volume := 0.0
	prevY := ref[1]
	for _, p := range points {
		if p[1] >= prevY {
			continue
		}
		volume += (ref[0] - p[0]) * (prevY - p[1])
		prevY = p[1]
	}
	return volume
}

// Spacing is Schott's spacing metric: the standard deviation of the Manhattan
// distance from every point to its nearest neighbour. Zero means evenly spread.
func Spacing(front []framework.ObjectiveSpacePoint) float64 {
	if len(front) < 2 {
		return 0
	}
	nearest := make([]float64, len(front))
	for i, a := range front {
		nearest[i] = math.Inf(1)
		for j, b := range front {
			if i == j {
				continue
			}
			if d := floats.Distance(a, b, 1); d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	return stat.StdDev(nearest, nil)
}

// ReferencePoint returns a point 10% beyond the worst value of every objective
func ReferencePoint(fronts ...[]framework.ObjectiveSpacePoint) framework.ObjectiveSpacePoint {
	var ref framework.ObjectiveSpacePoint
	for _, front := range fronts {
		for _, p := range front {
			if ref == nil {
				ref = make(framework.ObjectiveSpacePoint, len(p))
			}
			for i, v := range p {
				ref[i] = math.Max(ref[i], v)
			}
		}
	}
	for i := range ref {
		ref[i] = ref[i]*1.1 + 1
	}
	return ref
}

// nonDominated keeps the points no other point dominates, dropping duplicates
func nonDominated(points []framework.ObjectiveSpacePoint) []framework.ObjectiveSpacePoint {
	var out []framework.ObjectiveSpacePoint
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i == j {
				continue
			}
			if dominates(q, p) || (j < i && floats.Equal(p, q)) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, p)
		}
	}
	return out
}

func dominates(a, b framework.ObjectiveSpacePoint) bool {
	better := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

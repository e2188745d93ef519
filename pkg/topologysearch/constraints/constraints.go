package constraints

import (
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// AccessPointConstraint requires at least one access point when any task needs a data transfer
func AccessPointConstraint(tasks []*framework.Task) framework.Constraint {
	needed := hasTaskType(tasks, framework.DataTransfer)
	return func(network framework.Network) bool {
		return !needed || network.AccessPoints() > 0
	}
}

// EdgeServerConstraint requires at least one edge server RSU when any task needs computation
func EdgeServerConstraint(tasks []*framework.Task) framework.Constraint {
	needed := hasTaskType(tasks, framework.Computation)
	return func(network framework.Network) bool {
		return !needed || network.EdgeServers() > 0
	}
}

// AreaConstraint requires every RSU to lie inside the area
func AreaConstraint(area framework.Area) framework.Constraint {
	return func(network framework.Network) bool {
		for _, rsu := range network {
			if !area.Contains(rsu.X, rsu.Y) {
				return false
			}
		}
		return true
	}
}

// ServiceableConstraints returns the constraints under which every task type
// present has at least one compatible server, which the offloading simulation
// needs in order to terminate.
func ServiceableConstraints(tasks []*framework.Task) []framework.Constraint {
	return []framework.Constraint{
		AccessPointConstraint(tasks),
		EdgeServerConstraint(tasks),
	}
}

// CombineConstraints combines multiple constraints into one
func CombineConstraints(constraints ...framework.Constraint) framework.Constraint {
	return func(network framework.Network) bool {
		for _, constraint := range constraints {
			if !constraint(network) {
				return false
			}
		}
		return true
	}
}

func hasTaskType(tasks []*framework.Task, typ framework.TaskType) bool {
	for _, task := range tasks {
		if task.Type == typ {
			return true
		}
	}
	return false
}

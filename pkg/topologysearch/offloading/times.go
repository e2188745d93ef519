package offloading

import (
	"math"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

// ComputationTime is the number of ticks an edge server needs for a task of
// the given length (MI), spread over vmNumber VMs of vmCapacity MIPS each
func ComputationTime(length float64, vmNumber int, vmCapacity float64) int {
	return int(math.Ceil(length / (float64(vmNumber) * vmCapacity)))
}

// DataTransferTime is the number of ticks needed to move fileSize MB at dtr Mb/s
func DataTransferTime(fileSize, dtr float64) int {
	return int(math.Ceil(fileSize / dtr))
}

// MigrationTime is the number of ticks needed to migrate a task over the given
// distance to an RSU with the given data transfer rate
func MigrationTime(fileSize, distance, dtr float64) int {
	return int(math.Ceil((fileSize / dtr) * distance))
}

// Distance is the euclidean distance between a task and an RSU
func Distance(task *framework.Task, rsu *framework.RSU) float64 {
	return math.Hypot(task.X-rsu.X, task.Y-rsu.Y)
}

// Compatible reports whether the RSU can serve the task: access points only
// take data transfer tasks and edge-server RSUs only take computation tasks.
func Compatible(rsu *framework.RSU, task *framework.Task) bool {
	if rsu.IsAccessPoint() {
		return task.Type == framework.DataTransfer
	}
	return task.Type == framework.Computation
}

// ServiceTime is the time the RSU stays busy serving a compatible task
func ServiceTime(rsu *framework.RSU, task *framework.Task) int {
	if task.Type == framework.Computation {
		return ComputationTime(task.Length, rsu.ES.VMNumber, rsu.ES.VMCapacity)
	}
	return DataTransferTime(task.FileSize, rsu.DTR)
}

// ClosestRSU returns the RSU nearest to the task that is not in its history,
// or nil when every RSU has been visited. Ties go to the earlier RSU.
func ClosestRSU(network framework.Network, task *framework.Task) *framework.RSU {
	minDistance := math.Inf(1)
	var closest *framework.RSU
	for _, rsu := range network {
		if task.Visited(rsu.ID) {
			continue
		}
		if d := Distance(task, rsu); d < minDistance {
			minDistance = d
			closest = rsu
		}
	}
	return closest
}

package config

import "runtime"

// EstimateDefaultWorkers picks the workers scenario fan-out from the CPU
// count when --workers is not given. The result is always in [2,8].
func EstimateDefaultWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return 2
	case numCPU <= 4:
		return 4
	case numCPU <= 8:
		return 6
	default:
		return 8
	}
}

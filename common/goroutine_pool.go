package common

import (
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/shirou/gopsutil/v3/cpu"
	log "github.com/sirupsen/logrus"
)

type PoolConfig struct {
	MaxWorkers int // 0 sizes the pool to the physical CPU count
}

// NewPool creates the shared goroutine pool used by the od table build and
// the per-robot analysis fan-out. The caller owns the pool and releases it.
func NewPool(config PoolConfig) (*ants.Pool, error) {
	workers := config.MaxWorkers
	if workers <= 0 {
		workers = physicalCPUCount()
		log.Infof("NewPool: sizing goroutine pool to %d workers", workers)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		log.Errorf("NewPool: failed to create goroutine pool: %v", err)
		return nil, err
	}

	return pool, nil
}

// physicalCPUCount asks gopsutil for the physical core count, falling back
// to runtime.NumCPU when that fails.
func physicalCPUCount() int {
	count, err := cpu.Counts(false)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}

	return count
}

package common

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type HostDiagnostics struct {
	Hostname        string
	Platform        string
	PlatformVersion string
	CPUCores        int
	MemoryTotal     uint64
	MemoryAvailable uint64
}

// CollectHostDiagnostics snapshots the host facts logged once at startup.
func CollectHostDiagnostics() (HostDiagnostics, error) {
	info, err := host.Info()
	if err != nil {
		return HostDiagnostics{}, fmt.Errorf("failed to get host info: %v", err)
	}

	v, err := mem.VirtualMemory()
	if err != nil {
		return HostDiagnostics{}, fmt.Errorf("failed to get memory info: %v", err)
	}

	return HostDiagnostics{
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		CPUCores:        physicalCPUCount(),
		MemoryTotal:     v.Total,
		MemoryAvailable: v.Available,
	}, nil
}

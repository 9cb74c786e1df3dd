/*
PURPOSE:
  Captures a description of the machine a run executed on into the
  RunReport. Timings are only meaningful relative to their host, so the
  report must say what that host was.

REQUIREMENTS:
  User-specified:
  - Metadata only. No normalization of results across machines.

  Implementation-discovered:
  - Every gopsutil call can fail on exotic platforms; each field is
    best-effort and the zero value is an acceptable answer.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Dependencies: github.com/shirou/gopsutil/v3

ERROR HANDLING:
  - No error returns; missing fields stay empty.

IMPLEMENTATION RULES:
  - runtime.GOOS/NumCPU as the floor, gopsutil on top.

USAGE:
  report.Host = sysinfo.Collect()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Extend if GPU or disk metadata becomes relevant.
*/

package sysinfo

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rtbench/rtbench/internal/model"
)

// Collect gathers best-effort host metadata.
func Collect() model.HostInfo {
	info := model.HostInfo{
		OS:       runtime.GOOS,
		CPUCores: runtime.NumCPU(),
	}

	if name, err := os.Hostname(); err == nil {
		info.Hostname = name
	}
	if hi, err := host.Info(); err == nil {
		info.Platform = hi.Platform + " " + hi.PlatformVersion
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryMB = vm.Total / (1024 * 1024)
	}

	return info
}

package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Host describes the resources available for rendering.
type Host struct {
	LogicalCPUs     int
	AvailableMemory uint64 // bytes, 0 if unknown
}

// Probe queries the host. Failures fall back to runtime.NumCPU and an
// unknown memory size rather than aborting the run.
func Probe() Host {
	h := Host{LogicalCPUs: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		h.AvailableMemory = vm.Available
	}
	return h
}

func (h Host) String() string {
	if h.AvailableMemory == 0 {
		return fmt.Sprintf("%d CPU, memory unknown", h.LogicalCPUs)
	}
	return fmt.Sprintf("%d CPU, %.1f GiB available", h.LogicalCPUs, float64(h.AvailableMemory)/(1<<30))
}

// Workers picks the number of render goroutines. A positive request is
// honoured as is. Otherwise one worker per CPU, limited so that every
// worker's two canvases (frame and rotation scratch) fit into half of the
// available memory. The result is always at least 1.
func (h Host) Workers(requested int, frameBytes uint64) int {
	if requested > 0 {
		return requested
	}
	n := h.LogicalCPUs
	if h.AvailableMemory > 0 && frameBytes > 0 {
		if byMem := int(h.AvailableMemory / 2 / (frameBytes * 2)); byMem < n {
			n = byMem
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// FrameBytes is the size of one RGBA canvas.
func FrameBytes(width, height int) uint64 {
	return uint64(width) * uint64(height) * 4
}

package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var (
	systemCPUUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "notesync_system_cpu_usage_percent",
			Help: "Current CPU usage percentage",
		},
		[]string{"core"},
	)

	systemMemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "notesync_system_memory_usage_bytes",
			Help: "Current memory usage in bytes",
		},
		[]string{"type"},
	)

	goGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_go_goroutines",
			Help: "Number of goroutines that currently exist",
		},
	)

	goHeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_go_heap_alloc_bytes",
			Help: "Heap memory usage in bytes",
		},
	)

	goHeapSys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_go_heap_sys_bytes",
			Help: "Heap memory reserved in bytes",
		},
	)

	goGCCPUFraction = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_go_gc_cpu_fraction",
			Help: "Fraction of CPU time used by GC",
		},
	)
)

// StartSystemMetrics starts periodic collection of system and Go runtime
// metrics. Disabled unless ENABLE_SYSTEM_METRICS=true.
func StartSystemMetrics(interval time.Duration) {
	if os.Getenv("ENABLE_SYSTEM_METRICS") != "true" {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			collectSystemMetrics()
			collectGoRuntimeMetrics()
		}
	}()
}

func collectSystemMetrics() {
	if cpuPercentages, err := cpu.Percent(0, true); err == nil {
		for i, percentage := range cpuPercentages {
			systemCPUUsage.WithLabelValues(fmt.Sprintf("cpu%d", i)).Set(percentage)
		}
	}

	if vmstat, err := mem.VirtualMemory(); err == nil {
		systemMemoryUsage.WithLabelValues("total").Set(float64(vmstat.Total))
		systemMemoryUsage.WithLabelValues("available").Set(float64(vmstat.Available))
		systemMemoryUsage.WithLabelValues("used").Set(float64(vmstat.Used))
		systemMemoryUsage.WithLabelValues("free").Set(float64(vmstat.Free))
	}
}

func collectGoRuntimeMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	goGoroutines.Set(float64(runtime.NumGoroutine()))
	goHeapAlloc.Set(float64(m.HeapAlloc))
	goHeapSys.Set(float64(m.HeapSys))
	goGCCPUFraction.Set(m.GCCPUFraction)
}

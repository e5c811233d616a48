// Package sysmon snapshots host resource usage with gopsutil.
package sysmon

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"github.com/neuralforge/neuralforge/pkg/models"
)

const cpuSampleInterval = time.Second

// Snapshot collects one metrics sample. CPU usage is sampled over one
// second, so the call blocks for about that long.
func Snapshot() (*models.Metrics, error) {
	m := &models.Metrics{Timestamp: time.Now()}

	cpuPercents, err := cpu.Percent(cpuSampleInterval, false)
	if err != nil {
		return nil, fmt.Errorf("failed to sample cpu: %w", err)
	}
	if len(cpuPercents) > 0 {
		m.CPUPercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory: %w", err)
	}
	m.MemoryPercent = vm.UsedPercent
	m.MemoryUsed = vm.Used
	m.MemoryTotal = vm.Total

	du, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}
	m.DiskPercent = du.UsedPercent
	m.DiskUsed = du.Used
	m.DiskTotal = du.Total

	if counters, err := net.IOCounters(false); err == nil && len(counters) > 0 {
		m.NetBytesSent = counters[0].BytesSent
		m.NetBytesRecv = counters[0].BytesRecv
	}

	if uptime, err := host.Uptime(); err == nil {
		m.UptimeSeconds = uptime
	}

	return m, nil
}

// Render formats a metrics sample for terminal output.
func Render(m *models.Metrics) string {
	var b strings.Builder
	b.WriteString("System Snapshot\n")
	fmt.Fprintf(&b, "  CPU:    %5.1f%%\n", m.CPUPercent)
	fmt.Fprintf(&b, "  Memory: %5.1f%% (%s / %s)\n",
		m.MemoryPercent, humanize.Bytes(m.MemoryUsed), humanize.Bytes(m.MemoryTotal))
	fmt.Fprintf(&b, "  Disk:   %5.1f%% (%s / %s)\n",
		m.DiskPercent, humanize.Bytes(m.DiskUsed), humanize.Bytes(m.DiskTotal))
	fmt.Fprintf(&b, "  Net:    sent %s, recv %s\n",
		humanize.Bytes(m.NetBytesSent), humanize.Bytes(m.NetBytesRecv))
	if m.UptimeSeconds > 0 {
		fmt.Fprintf(&b, "  Uptime: %s\n", (time.Duration(m.UptimeSeconds) * time.Second).String())
	}
	return b.String()
}

// Alerts returns human-readable warnings for samples above the given
// thresholds (percent values).
func Alerts(m *models.Metrics, cpuMax, memMax, diskMax float64) []string {
	var alerts []string
	if m.CPUPercent > cpuMax {
		alerts = append(alerts, fmt.Sprintf("High CPU usage: %.1f%%", m.CPUPercent))
	}
	if m.MemoryPercent > memMax {
		alerts = append(alerts, fmt.Sprintf("High memory usage: %.1f%%", m.MemoryPercent))
	}
	if m.DiskPercent > diskMax {
		alerts = append(alerts, fmt.Sprintf("High disk usage: %.1f%%", m.DiskPercent))
	}
	return alerts
}

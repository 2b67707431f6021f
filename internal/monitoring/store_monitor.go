package monitoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/isdelr/mini-social-be/internal/services"
	"github.com/isdelr/mini-social-be/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// StoreStats is a periodic sample of store and host health, broadcast to
// connected clients.
type StoreStats struct {
	StoreSizeBytes int64     `json:"storeSizeBytes"`
	DiskFreeBytes  uint64    `json:"diskFreeBytes"`
	MemUsedPercent float64   `json:"memUsedPercent"`
	SampledAt      time.Time `json:"sampledAt"`
}

// StoreMonitor watches the store file size and host resources. Posts can
// embed images as data URIs, so the store file can grow quickly; the monitor
// raises a warning once it passes a soft limit.
type StoreMonitor struct {
	storePath      string
	softLimitBytes int64
	eventSvc       services.EventServiceProvider
	hub            *websocket.Hub
	ticker         *time.Ticker
	done           chan bool
	alerted        bool
}

// NewStoreMonitor creates a new StoreMonitor.
func NewStoreMonitor(storePath string, softLimitMB int, eventSvc services.EventServiceProvider, hub *websocket.Hub) *StoreMonitor {
	return &StoreMonitor{
		storePath:      storePath,
		softLimitBytes: int64(softLimitMB) * 1024 * 1024,
		eventSvc:       eventSvc,
		hub:            hub,
		done:           make(chan bool),
	}
}

// Run starts the periodic sampling.
func (m *StoreMonitor) Run() {
	log.Info().Msg("Starting store monitor...")
	m.ticker = time.NewTicker(30 * time.Second)
	defer m.ticker.Stop()

	// Sample once immediately on start
	m.sample()

	for {
		select {
		case <-m.done:
			log.Info().Msg("Stopping store monitor.")
			return
		case <-m.ticker.C:
			m.sample()
		}
	}
}

// Stop halts the monitor.
func (m *StoreMonitor) Stop() {
	m.done <- true
}

func (m *StoreMonitor) sample() {
	stats := StoreStats{SampledAt: time.Now().UTC()}

	if fi, err := os.Stat(m.storePath); err == nil {
		stats.StoreSizeBytes = fi.Size()
	}
	if usage, err := disk.Usage(filepath.Dir(m.storePath)); err == nil {
		stats.DiskFreeBytes = usage.Free
	} else {
		log.Debug().Err(err).Msg("Failed to read disk usage")
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemUsedPercent = vm.UsedPercent
	} else {
		log.Debug().Err(err).Msg("Failed to read memory usage")
	}

	m.checkSoftLimit(stats.StoreSizeBytes)
	m.broadcast(stats)
}

// checkSoftLimit raises a single storage alert while the store stays over
// the limit, and re-arms once it drops back under.
func (m *StoreMonitor) checkSoftLimit(size int64) {
	if m.softLimitBytes <= 0 {
		return
	}
	if size > m.softLimitBytes {
		if !m.alerted {
			m.alerted = true
			msg := fmt.Sprintf("Store file has grown to %d MB; embedded images may be filling storage.", size/(1024*1024))
			log.Warn().Int64("size_bytes", size).Msg("Store soft limit exceeded")
			m.eventSvc.CreateEvent("system.alert.storage", "warn", msg, nil)
		}
		return
	}
	m.alerted = false
}

func (m *StoreMonitor) broadcast(stats StoreStats) {
	if m.hub == nil {
		return
	}
	msg, err := json.Marshal(websocket.Message{Action: "system.stats", Payload: stats})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode stats message")
		return
	}
	m.hub.Broadcast <- msg
}

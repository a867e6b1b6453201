package observers

import (
	"sync"

	"github.com/anggasct/crosslight"
)

// Metrics is a point-in-time copy of what a MetricsObserver collected
type Metrics struct {
	Publishes      int
	ModeEntries    map[crosslight.Mode]int
	Toggles        map[crosslight.Group]int
	IgnoredToggles int
	Errors         int
	// LastTick holds the tick of the latest publish per approach ID
	LastTick map[string]uint32
}

// MetricsObserver collects counters about approach activity
type MetricsObserver struct {
	publishes      int
	modeEntries    map[crosslight.Mode]int
	toggles        map[crosslight.Group]int
	ignoredToggles int
	errorCount     int
	lastTick       map[string]uint32
	mutex          sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		modeEntries: make(map[crosslight.Mode]int),
		toggles:     make(map[crosslight.Group]int),
		lastTick:    make(map[string]uint32),
	}
}

// OnModeChange records the mode entered
func (o *MetricsObserver) OnModeChange(status crosslight.Status, from, to crosslight.Mode) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.modeEntries[to]++
}

// OnPublish records a publish
func (o *MetricsObserver) OnPublish(update crosslight.Update) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.publishes++
	o.lastTick[update.ApproachID] = update.State.Tick
}

// OnToggle records a flipped signal head
func (o *MetricsObserver) OnToggle(status crosslight.Status, group crosslight.Group, from, to crosslight.Light) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.toggles[group]++
}

// OnToggleIgnored records a toggle without effect
func (o *MetricsObserver) OnToggleIgnored(status crosslight.Status, group crosslight.Group, reason string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.ignoredToggles++
}

// OnError records an error
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errorCount++
}

// Snapshot returns a copy of the collected metrics
func (o *MetricsObserver) Snapshot() Metrics {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	m := Metrics{
		Publishes:      o.publishes,
		ModeEntries:    make(map[crosslight.Mode]int, len(o.modeEntries)),
		Toggles:        make(map[crosslight.Group]int, len(o.toggles)),
		IgnoredToggles: o.ignoredToggles,
		Errors:         o.errorCount,
		LastTick:       make(map[string]uint32, len(o.lastTick)),
	}
	for k, v := range o.modeEntries {
		m.ModeEntries[k] = v
	}
	for k, v := range o.toggles {
		m.Toggles[k] = v
	}
	for k, v := range o.lastTick {
		m.LastTick[k] = v
	}
	return m
}

// Reset clears all collected metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.publishes = 0
	o.modeEntries = make(map[crosslight.Mode]int)
	o.toggles = make(map[crosslight.Group]int)
	o.ignoredToggles = 0
	o.errorCount = 0
	o.lastTick = make(map[string]uint32)
}

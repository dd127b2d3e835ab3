package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a turn.
type Phase uint8

const (
	PhaseBehavior  Phase = iota // scheduler pass over the grid
	PhaseSweep                  // ECS orphan removal
	PhaseTelemetry              // census window flush
	numPhases
)

var phaseNames = [numPhases]string{"behavior", "sweep", "telemetry"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// turnSample is the timing of one turn.
type turnSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	ran    [numPhases]bool
}

// PerfCollector keeps turn timings for the last window of turns.
type PerfCollector struct {
	ring  []turnSample
	next  int
	count int

	current    turnSample
	turnStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Interval between emitted frames, including any display delay
	lastFrame     time.Time
	frameInterval time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize turns.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]turnSample, windowSize)}
}

// StartTurn begins timing a new turn.
func (p *PerfCollector) StartTurn() {
	p.turnStart = time.Now()
	p.current = turnSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

// EndTurn closes the running phase and stores the turn.
func (p *PerfCollector) EndTurn() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.current.total = now.Sub(p.turnStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if !p.inPhase || p.phase >= numPhases {
		return
	}
	p.current.phases[p.phase] += now.Sub(p.phaseStart)
	p.current.ran[p.phase] = true
}

// RecordFrame marks a frame boundary.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameInterval = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	AvgTurnDuration time.Duration
	MinTurnDuration time.Duration
	MaxTurnDuration time.Duration

	// Only phases that ran in the window appear
	PhaseAvg map[Phase]time.Duration
	PhasePct map[Phase]float64 // share of the average turn

	TurnsPerSecond float64

	FrameInterval time.Duration
	FPS           float64
}

// Stats aggregates the stored turns.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[Phase]time.Duration),
		PhasePct:      make(map[Phase]float64),
		FrameInterval: p.frameInterval,
	}
	if p.frameInterval > 0 {
		s.FPS = float64(time.Second) / float64(p.frameInterval)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var ran [numPhases]bool
	for i, sample := range p.ring[:p.count] {
		total += sample.total
		if i == 0 || sample.total < s.MinTurnDuration {
			s.MinTurnDuration = sample.total
		}
		s.MaxTurnDuration = max(s.MaxTurnDuration, sample.total)
		for ph := range numPhases {
			phaseSum[ph] += sample.phases[ph]
			ran[ph] = ran[ph] || sample.ran[ph]
		}
	}

	n := time.Duration(p.count)
	s.AvgTurnDuration = total / n
	if s.AvgTurnDuration > 0 {
		s.TurnsPerSecond = float64(time.Second) / float64(s.AvgTurnDuration)
	}
	for ph := range numPhases {
		if !ran[ph] {
			continue
		}
		avg := phaseSum[ph] / n
		s.PhaseAvg[ph] = avg
		if s.AvgTurnDuration > 0 {
			s.PhasePct[ph] = float64(avg) / float64(s.AvgTurnDuration) * 100
		}
	}
	return s
}

// LogStats logs the window summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_turn_us", s.AvgTurnDuration.Microseconds()),
		slog.Int64("min_turn_us", s.MinTurnDuration.Microseconds()),
		slog.Int64("max_turn_us", s.MaxTurnDuration.Microseconds()),
		slog.Int("turns_per_sec", int(s.TurnsPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := range numPhases {
		if pct, ok := s.PhasePct[ph]; ok {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"turn"`
	AvgTurnUS    int64   `csv:"avg_turn_us"`
	MinTurnUS    int64   `csv:"min_turn_us"`
	MaxTurnUS    int64   `csv:"max_turn_us"`
	TurnsPerSec  float64 `csv:"turns_per_sec"`
	FPS          float64 `csv:"fps"`
	BehaviorPct  float64 `csv:"behavior_pct"`
	SweepPct     float64 `csv:"sweep_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTurnUS:    s.AvgTurnDuration.Microseconds(),
		MinTurnUS:    s.MinTurnDuration.Microseconds(),
		MaxTurnUS:    s.MaxTurnDuration.Microseconds(),
		TurnsPerSec:  s.TurnsPerSecond,
		FPS:          s.FPS,
		BehaviorPct:  s.PhasePct[PhaseBehavior],
		SweepPct:     s.PhasePct[PhaseSweep],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}

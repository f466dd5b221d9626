package aeony

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-draw timing and counts.
// Only populated when Scene.debug is true.
type frameStats struct {
	reconcileTime time.Duration
	renderTime    time.Duration
	compositeTime time.Duration
	entities      int
	relocated     int
	drawn         int
	cameras       int
}

// debugLog logs frame stats at debug level.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.reconcileTime + stats.renderTime + stats.compositeTime
	s.log.Debug("scene draw",
		zap.Duration("reconcile", stats.reconcileTime),
		zap.Duration("render", stats.renderTime),
		zap.Duration("composite", stats.compositeTime),
		zap.Duration("total", total),
		zap.Int("entities", stats.entities),
		zap.Int("relocated", stats.relocated),
		zap.Int("drawn", stats.drawn),
		zap.Int("cameras", stats.cameras),
	)
}

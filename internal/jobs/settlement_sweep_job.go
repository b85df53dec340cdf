package jobs

import (
	"context"
	"time"

	"aeroclub/logbook/internal/logging"
	"aeroclub/logbook/internal/metrics"
	"aeroclub/logbook/internal/services"
)

// SettlementSweepJob periodically bills every unsettled flight. The sweep
// reuses SettleAll, so a manual trigger and the timer path behave the same.
type SettlementSweepJob struct {
	settlementSvc *services.SettlementService
	metricsReg    *metrics.MetricsRegistry
	interval      time.Duration
}

func NewSettlementSweepJob(settlementSvc *services.SettlementService, metricsReg *metrics.MetricsRegistry, interval time.Duration) *SettlementSweepJob {
	return &SettlementSweepJob{
		settlementSvc: settlementSvc,
		metricsReg:    metricsReg,
		interval:      interval,
	}
}

// Start runs the sweep loop until the context is cancelled. One sweep runs
// immediately so a restart never delays billing by a full interval.
func (j *SettlementSweepJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("SETTLEMENT_SWEEP_STOPPED")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *SettlementSweepJob) runOnce(ctx context.Context) {
	start := time.Now()

	settled, err := j.settlementSvc.SettleAll(ctx)
	if err != nil {
		logging.Error("SETTLEMENT_SWEEP_FAILED", "error", err.Error())
		return
	}

	if j.metricsReg != nil {
		j.metricsReg.SettlementSweepRuns.Inc()
	}
	logging.Info("SETTLEMENT_SWEEP_COMPLETED",
		"settled", settled,
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
	)
}

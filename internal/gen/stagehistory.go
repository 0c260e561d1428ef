package gen

import (
	"math"
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

const (
	stageDiscovery   = "Discovery"
	stageProposal    = "Proposal"
	stageNegotiation = "Negotiation"
)

// dealSize buckets an amount by the configured thresholds.
func dealSize(amount float64, cfg config.HistoryConfig) string {
	switch {
	case amount < cfg.SmallDealThreshold:
		return "small"
	case amount < cfg.MidDealThreshold:
		return "mid"
	default:
		return "large"
	}
}

// stagePath picks the traversed prefix of the canonical stage sequence.
// Larger deals run longer paths.
func stagePath(r *Rand, size string) []string {
	roll := r.Float64()
	switch size {
	case "small":
		switch {
		case roll < 0.5:
			return []string{stageDiscovery}
		case roll < 0.85:
			return []string{stageDiscovery, stageProposal}
		default:
			return []string{stageDiscovery, stageProposal, stageNegotiation}
		}
	case "mid":
		switch {
		case roll < 0.2:
			return []string{stageDiscovery}
		case roll < 0.7:
			return []string{stageDiscovery, stageProposal}
		default:
			return []string{stageDiscovery, stageProposal, stageNegotiation}
		}
	default:
		if roll < 0.9 {
			return []string{stageDiscovery, stageProposal, stageNegotiation}
		}
		return []string{stageDiscovery, stageProposal, stageNegotiation, domain.StageClosed}
	}
}

// StageHistory generates a stage transition trail per opportunity. Dwell
// times scale with deal size, lead source, rep tier, and account status,
// with log-normal noise on top. The clock only ever advances; a revisit is
// recorded as a forward event labeled with the prior stage name.
func StageHistory(r *Rand, cfg config.HistoryConfig, opps []domain.Opportunity, now time.Time) []domain.StageHistory {
	var rows []domain.StageHistory
	for _, o := range opps {
		// Rep tier and account status are resampled here rather than read
		// off the opportunity; they shape dwell times without being stored.
		repTier := cfg.RepTiers[r.Intn(len(cfg.RepTiers))]
		status := cfg.AccountStatuses[r.Intn(len(cfg.AccountStatuses))]

		size := dealSize(amountFloat(o), cfg)
		srcRange, hasSrc := cfg.SourceMultipliers[o.LeadSource]
		repRange := cfg.RepMultipliers[repTier]
		statusRange := cfg.StatusMultipliers[status]

		// Tiers are fixed per opportunity; the multipliers within their
		// ranges are redrawn for every stage.
		dwellDays := func(stage string) float64 {
			d := cfg.BaseStageDays[stage] * r.Uniform(cfg.DealSizeMultipliers[size])
			if hasSrc {
				d *= r.Uniform(srcRange)
			}
			d *= r.Uniform(repRange) * r.Uniform(statusRange) * r.Noise(cfg.NoiseSigma)
			return math.Max(d, 1)
		}

		startOffset := 30 + r.Float64()*700
		clock := now.UTC().Add(-time.Duration(startOffset*24) * time.Hour)

		emit := func(stage string) {
			rows = append(rows, domain.StageHistory{
				ID:            r.UUID(),
				OpportunityID: o.ID,
				StageName:     stage,
				EnteredAt:     clock,
				ChangedBy:     cfg.Reps[r.Intn(len(cfg.Reps))],
				Notes:         r.note(),
			})
		}

		path := stagePath(r, size)
		for i, stage := range path {
			emit(stage)
			if stage == domain.StageClosed {
				continue
			}
			clock = clock.Add(time.Duration(dwellDays(stage)*24) * time.Hour)
			if i > 0 && r.Bool(cfg.ReentryProb) {
				emit(path[i-1] + " (revisit)")
			}
		}
	}
	return rows
}

func amountFloat(o domain.Opportunity) float64 {
	f, _ := o.Amount.Float64()
	return f
}

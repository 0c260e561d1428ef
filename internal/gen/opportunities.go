package gen

import (
	"errors"
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// Opportunities generates per-account opportunities over the configured
// span. Ownership round-robins across AEs with a configurable skew toward
// the top reps.
func Opportunities(r *Rand, cfg config.OpportunitiesConfig, accounts []domain.Account, now time.Time) ([]domain.Opportunity, error) {
	if len(accounts) == 0 {
		return nil, errors.New("no accounts to generate opportunities for")
	}
	day := now.UTC().Truncate(24 * time.Hour)
	var opps []domain.Opportunity
	i := 0
	for _, acct := range accounts {
		tier := r.PickTier(cfg.CountTiers)
		n := r.Between(tier.Min, tier.Max)
		for j := 0; j < n; j++ {
			owner := i%cfg.AECount + 1
			if r.Bool(cfg.TopRepSkew) {
				owner = r.Between(1, cfg.TopRepCount)
			}
			i++

			created := day.AddDate(0, 0, -r.Intn(cfg.TimeSpanDays))
			cycle := r.PickTier(cfg.CycleTiers)
			closeDate := created.AddDate(0, 0, r.Between(cycle.Min, cycle.Max))

			source := r.Pick(cfg.Sources)
			acv, ok := cfg.ACV[source]
			if !ok {
				acv = cfg.DefaultACV
			}

			o := domain.Opportunity{
				ID:          r.UUID(),
				AccountID:   acct.ID,
				OwnerID:     owner,
				CreatedAt:   created,
				CloseDate:   closeDate,
				Amount:      Money(r.LogNormal(acv)),
				Currency:    cfg.Currency,
				LeadSource:  source,
				ProductLine: r.Pick(cfg.ProductLines),
			}
			if r.Bool(cfg.ClosedRatio) {
				outcome := r.Pick(cfg.CloseOutcomes)
				o.IsClosed = true
				o.CloseOutcome = &outcome
				o.Stage = domain.StageClosed
				if outcome == domain.OutcomeWon {
					o.StageProbability = 1.0
				}
			} else {
				o.Stage = r.Pick(cfg.OpenStages)
				o.StageProbability = round2(r.Uniform(cfg.StageProbability[o.Stage]))
			}
			opps = append(opps, o)
		}
	}
	return opps, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

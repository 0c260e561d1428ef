package gen

import (
	"errors"
	"math"
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// Activities generates touchpoints for each opportunity, restricted to
// contacts on the same account. Opportunities with no account-linked
// contacts are skipped. Volume scales with deal size.
func Activities(r *Rand, cfg config.ActivitiesConfig, hist config.HistoryConfig, weekday []float64, opps []domain.Opportunity, contacts []domain.Contact, now time.Time) ([]domain.Activity, error) {
	if len(opps) == 0 {
		return nil, errors.New("no opportunities to generate activities for")
	}
	if len(contacts) == 0 {
		return nil, errors.New("no contacts to generate activities for")
	}

	byAccount := make(map[string][]domain.Contact)
	for _, c := range contacts {
		if c.AccountID != nil {
			byAccount[*c.AccountID] = append(byAccount[*c.AccountID], c)
		}
	}

	var acts []domain.Activity
	for _, o := range opps {
		pool := byAccount[o.AccountID]
		if len(pool) == 0 {
			continue
		}

		size := dealSize(amountFloat(o), hist)
		count := int(math.Round(float64(r.BetweenRange(cfg.CountBySize[size])) * r.Noise(cfg.NoiseSigma)))
		if count < 1 {
			count = 1
		}

		k := r.BetweenRange(cfg.ContactsBySize[size])
		if k > len(pool) {
			k = len(pool)
		}
		chosen := sampleContacts(r, pool, k)

		end := o.CloseDate
		if end.After(now) {
			end = now
		}
		days := candidateDays(o.CreatedAt, end)

		for i := 0; i < count; i++ {
			actType := r.Pick(cfg.Types)
			outcome := r.Pick(cfg.Outcomes[actType])
			occurred := occurredAt(r, cfg, weekday, days)
			// hour/minute jitter must not escape the deal window
			if occurred.After(end) {
				occurred = end
			}
			if occurred.Before(o.CreatedAt) {
				occurred = o.CreatedAt
			}
			a := domain.Activity{
				ID:            r.UUID(),
				OpportunityID: o.ID,
				ContactID:     chosen[r.Intn(len(chosen))].ID,
				Type:          actType,
				OccurredAt:    occurred,
				Direction:     r.Pick(cfg.Directions),
				Outcome:       outcome,
			}
			if d := callDuration(r, actType, outcome); d > 0 {
				a.DurationSeconds = &d
			}
			acts = append(acts, a)
		}
	}
	return acts, nil
}

func sampleContacts(r *Rand, pool []domain.Contact, k int) []domain.Contact {
	idx := r.Perm(len(pool))[:k]
	out := make([]domain.Contact, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// candidateDays lists the whole days in [start, end]. A degenerate window
// yields just the start day.
func candidateDays(start, end time.Time) []time.Time {
	s := start.UTC().Truncate(24 * time.Hour)
	e := end.UTC().Truncate(24 * time.Hour)
	if !e.After(s) {
		return []time.Time{s}
	}
	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// occurredAt picks a day weighted by weekday pattern, then a business-hours
// timestamp within it. Zero total weight falls back to uniform days.
func occurredAt(r *Rand, cfg config.ActivitiesConfig, weekday []float64, days []time.Time) time.Time {
	total := 0.0
	weights := make([]float64, len(days))
	for i, d := range days {
		weights[i] = weekday[(int(d.Weekday())+6)%7]
		total += weights[i]
	}
	var day time.Time
	if total <= 0 {
		day = days[r.Intn(len(days))]
	} else {
		x := r.Float64() * total
		day = days[len(days)-1]
		for i, w := range weights {
			x -= w
			if x < 0 {
				day = days[i]
				break
			}
		}
	}
	hour := r.PickCount(cfg.HourWeights)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(r.Between(0, 59))*time.Minute)
}

// callDuration reports a duration in seconds for activity kinds that have
// one, zero otherwise.
func callDuration(r *Rand, actType, outcome string) int {
	switch {
	case actType == "call" && outcome == "connected":
		return r.Between(120, 1800)
	case actType == "meeting" && outcome == "held":
		return r.Between(900, 3600)
	case actType == "demo" && outcome == "completed":
		return r.Between(1200, 3600)
	}
	return 0
}

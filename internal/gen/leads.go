package gen

import (
	"sort"
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// maxDateDraws caps the rejection sampler so pathological weights cannot
// spin forever.
const maxDateDraws = 1000

// leadDate rejection-samples a creation day from the window so weekday and
// month seasonality shape the result.
func leadDate(r *Rand, cfg config.LeadsConfig, now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	window := cfg.Months * 30
	for i := 0; i < maxDateDraws; i++ {
		d := day.AddDate(0, 0, -r.Intn(window))
		// time.Weekday is Sunday-first; the weights are Monday-first
		w := (int(d.Weekday()) + 6) % 7
		p := cfg.WeekdayWeights[w] * cfg.MonthMultipliers[d.Month()-1] * 2
		if r.Bool(p) {
			return d
		}
	}
	return day.AddDate(0, 0, -r.Intn(window))
}

// Leads generates (inbound+outbound)*months leads over the configured
// window, round-robined across BDRs in date order.
func Leads(r *Rand, cfg config.LeadsConfig, accounts []domain.Account, now time.Time) []domain.Lead {
	total := cfg.Total()
	dates := make([]time.Time, total)
	for i := range dates {
		d := leadDate(r, cfg, now)
		dates[i] = d.Add(time.Duration(r.Between(8, 18))*time.Hour + time.Duration(r.Between(0, 59))*time.Minute)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	emails := newUniquer()
	leads := make([]domain.Lead, 0, total)
	for i, d := range dates {
		source := r.Pick(cfg.Sources)
		var accountID *string
		if len(accounts) > 0 && r.Bool(cfg.AccountLinkProb) {
			id := accounts[r.Intn(len(accounts))].ID
			accountID = &id
		}
		rate := r.Uniform(cfg.MQLRates[source])
		leads = append(leads, domain.Lead{
			ID:                 r.UUID(),
			CreatedAt:          d,
			Source:             source,
			OwnerID:            i%cfg.BDRCount + 1,
			Email:              emails.takeEmail(r.personEmail),
			AccountID:          accountID,
			MarketingQualified: r.Bool(rate),
		})
	}
	return leads
}

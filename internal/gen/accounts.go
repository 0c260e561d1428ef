package gen

import (
	"time"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// Accounts generates the configured number of accounts. Roughly
// cfg.RecentFraction of them were created within the last year, the rest in
// the year before, shuffled so creation order carries no signal.
func Accounts(r *Rand, cfg config.AccountsConfig, now time.Time) []domain.Account {
	nRecent := int(float64(cfg.Count)*cfg.RecentFraction + 0.5)
	offsets := make([]int, 0, cfg.Count)
	for i := 0; i < nRecent; i++ {
		offsets = append(offsets, r.Intn(365))
	}
	for i := nRecent; i < cfg.Count; i++ {
		offsets = append(offsets, 365+r.Intn(365))
	}
	r.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})

	names := newUniquer()
	day := now.UTC().Truncate(24 * time.Hour)
	accounts := make([]domain.Account, 0, cfg.Count)
	for _, off := range offsets {
		bucket := r.Pick(cfg.RevenueBuckets)
		accounts = append(accounts, domain.Account{
			ID:            r.UUID(),
			Name:          names.take(r.companyName),
			Industry:      r.Pick(cfg.Industries),
			Category:      r.Pick(cfg.Categories),
			AnnualRevenue: Money(r.LogNormal(cfg.RevenueLogNormal[bucket])),
			Region:        r.Pick(regionWeights),
			CreatedAt:     day.AddDate(0, 0, -off),
		})
	}
	return accounts
}

package gen

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"salesline/internal/config"
	"salesline/internal/domain"
)

// BillingOrders generates order sequences for won opportunities. Renewal
// amounts decay from the initial order, dates carry end-of-month and
// seasonal bias, and each order lands strictly after its predecessor.
func BillingOrders(r *Rand, cfg config.BillingConfig, opps []domain.Opportunity, now time.Time) ([]domain.BillingOrder, error) {
	if len(opps) == 0 {
		return nil, errors.New("no opportunities to generate billing orders for")
	}
	var orders []domain.BillingOrder
	for _, o := range opps {
		if !o.IsClosed || o.CloseOutcome == nil || *o.CloseOutcome != domain.OutcomeWon {
			continue
		}
		tier := r.PickTier(cfg.OrderCountTiers)
		n := r.Between(tier.Min, tier.Max)

		var prev time.Time
		var prevAmount decimal.Decimal
		for i := 0; i < n; i++ {
			var amount decimal.Decimal
			var date time.Time
			if i == 0 {
				amount = Money(amountFloat(o) * r.Uniform(config.Range{Low: 0.9, High: 1.1}))
				date = o.CloseDate.AddDate(0, 0, r.BetweenRange(cfg.InitialLagDays))
			} else {
				f, _ := prevAmount.Float64()
				amount = Money(f * r.Uniform(config.Range{Low: 0.2, High: 0.6}))
				months := 12*i + r.Between(-1, 0)
				date = o.CloseDate.AddDate(0, 0, months*30+r.Between(-cfg.RenewalJitterDays, cfg.RenewalJitterDays-1))
			}

			if r.Bool(cfg.EndOfMonthBias) {
				day := date.Day() + r.Between(1, 2)
				if day > 28 {
					day = 28
				}
				date = time.Date(date.Year(), date.Month(), day, 0, 0, 0, 0, time.UTC)
			}
			if len(cfg.PeakMonths) > 0 && r.Bool(cfg.SeasonalBias) {
				m := time.Month(cfg.PeakMonths[r.Intn(len(cfg.PeakMonths))])
				day := date.Day()
				if day > 28 {
					day = 28
				}
				date = time.Date(date.Year(), m, day, 0, 0, 0, 0, time.UTC)
			}
			if i > 0 && !date.After(prev) {
				date = prev.AddDate(0, 0, 1)
			}

			orders = append(orders, domain.BillingOrder{
				ID:            r.UUID(),
				AccountID:     o.AccountID,
				OpportunityID: o.ID,
				Amount:        amount,
				Currency:      cfg.Currency,
				OrderDate:     date,
				TermMonths:    r.PickCount(cfg.TermMonths),
			})
			prev = date
			prevAmount = amount
		}
	}
	return orders, nil
}

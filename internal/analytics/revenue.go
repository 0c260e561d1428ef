package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"salesline/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// Annualized converts an order amount over its term to a yearly run rate.
func Annualized(o domain.BillingOrder) decimal.Decimal {
	if o.TermMonths <= 0 {
		return decimal.Zero
	}
	return o.Amount.Mul(twelve).Div(decimal.NewFromInt(int64(o.TermMonths))).Round(2)
}

type ARRPoint struct {
	Month  string // YYYY-MM
	Orders int
	ARR    decimal.Decimal
}

// ARRByMonth sums annualized order value by order month.
func ARRByMonth(orders []domain.BillingOrder) []ARRPoint {
	byMonth := map[string]*ARRPoint{}
	for _, o := range orders {
		m := o.OrderDate.Format("2006-01")
		p, ok := byMonth[m]
		if !ok {
			p = &ARRPoint{Month: m, ARR: decimal.Zero}
			byMonth[m] = p
		}
		p.Orders++
		p.ARR = p.ARR.Add(Annualized(o))
	}
	res := make([]ARRPoint, 0, len(byMonth))
	for _, p := range byMonth {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Month < res[j].Month })
	return res
}

type RetentionSummary struct {
	Accounts        int     // accounts with at least one order
	Renewed         int     // accounts with two or more orders
	RenewalRate     float64 // renewed / accounts
	AvgRenewalRatio float64 // mean of (second order / first order) over renewed accounts
}

// Retention summarizes renewal behavior per account from order sequences.
func Retention(orders []domain.BillingOrder) RetentionSummary {
	byAccount := map[string][]domain.BillingOrder{}
	for _, o := range orders {
		byAccount[o.AccountID] = append(byAccount[o.AccountID], o)
	}
	var sum RetentionSummary
	var ratios []float64
	for _, seq := range byAccount {
		sort.Slice(seq, func(i, j int) bool { return seq[i].OrderDate.Before(seq[j].OrderDate) })
		sum.Accounts++
		if len(seq) < 2 {
			continue
		}
		sum.Renewed++
		first, _ := seq[0].Amount.Float64()
		second, _ := seq[1].Amount.Float64()
		if first > 0 {
			ratios = append(ratios, second/first)
		}
	}
	if sum.Accounts > 0 {
		sum.RenewalRate = float64(sum.Renewed) / float64(sum.Accounts)
	}
	sum.AvgRenewalRatio = Mean(ratios)
	return sum
}

type CategorySlice struct {
	Category string
	Count    int
	Share    float64
}

// CategoryMix reports the lifecycle category composition of accounts.
func CategoryMix(accounts []domain.Account) []CategorySlice {
	byCat := map[string]int{}
	for _, a := range accounts {
		byCat[a.Category]++
	}
	res := make([]CategorySlice, 0, len(byCat))
	for cat, n := range byCat {
		res = append(res, CategorySlice{
			Category: cat,
			Count:    n,
			Share:    float64(n) / float64(len(accounts)),
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Category < res[j].Category })
	return res
}

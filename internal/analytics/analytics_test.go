package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesline/internal/analytics"
	"salesline/internal/domain"
)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOpenPipelineByStage(t *testing.T) {
	opps := []domain.Opportunity{
		{ID: "1", Stage: "Discovery", Amount: money(1000), StageProbability: 0.2},
		{ID: "2", Stage: "Discovery", Amount: money(3000), StageProbability: 0.1},
		{ID: "3", Stage: "Negotiation", Amount: money(5000), StageProbability: 0.5},
		{ID: "4", Stage: "Closed", Amount: money(9000), IsClosed: true, CloseOutcome: strPtr(domain.OutcomeWon)},
	}
	slices := analytics.OpenPipelineByStage(opps)
	if len(slices) != 2 {
		t.Fatalf("got %d stages, want 2", len(slices))
	}
	if slices[0].Stage != "Discovery" || slices[1].Stage != "Negotiation" {
		t.Fatalf("stages out of canonical order: %v", slices)
	}
	if !slices[0].Amount.Equal(money(4000)) {
		t.Errorf("discovery amount %s, want 4000", slices[0].Amount)
	}
	if !slices[0].Weighted.Equal(money(500)) {
		t.Errorf("discovery weighted %s, want 500", slices[0].Weighted)
	}
}

func TestForecastByCloseMonth(t *testing.T) {
	opps := []domain.Opportunity{
		{ID: "1", CloseDate: day(2025, 3, 10), Amount: money(1000), StageProbability: 0.5},
		{ID: "2", CloseDate: day(2025, 3, 25), Amount: money(2000), StageProbability: 0.25},
		{ID: "3", CloseDate: day(2025, 1, 5), Amount: money(500), StageProbability: 0.1},
		{ID: "4", CloseDate: day(2025, 2, 5), Amount: money(99), IsClosed: true},
	}
	buckets := analytics.ForecastByCloseMonth(opps)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Month != "2025-01" || buckets[1].Month != "2025-03" {
		t.Fatalf("buckets out of order: %v", buckets)
	}
	if !buckets[1].Weighted.Equal(money(1000)) {
		t.Errorf("march weighted %s, want 1000", buckets[1].Weighted)
	}
}

func TestSalesCycleAndWinRate(t *testing.T) {
	opps := []domain.Opportunity{
		{ID: "1", CreatedAt: day(2025, 1, 1), CloseDate: day(2025, 1, 11), IsClosed: true, CloseOutcome: strPtr(domain.OutcomeWon)},
		{ID: "2", CreatedAt: day(2025, 1, 1), CloseDate: day(2025, 1, 31), IsClosed: true, CloseOutcome: strPtr(domain.OutcomeLost)},
		{ID: "3", CreatedAt: day(2025, 1, 1), CloseDate: day(2025, 3, 2), IsClosed: true, CloseOutcome: strPtr(domain.OutcomeLost)},
		{ID: "4", CreatedAt: day(2025, 1, 1), CloseDate: day(2025, 6, 1)},
	}
	cs := analytics.SalesCycle(opps)
	if cs.Count != 3 {
		t.Fatalf("cycle count %d, want 3", cs.Count)
	}
	if cs.MedianDays != 30 {
		t.Errorf("median %.1f, want 30", cs.MedianDays)
	}
	if math.Abs(cs.MeanDays-100.0/3) > 0.01 {
		t.Errorf("mean %.2f, want %.2f", cs.MeanDays, 100.0/3)
	}
	if wr := analytics.WinRate(opps); math.Abs(wr-1.0/3) > 1e-9 {
		t.Errorf("win rate %.3f, want 0.333", wr)
	}
}

func TestSourceEfficiency(t *testing.T) {
	leads := []domain.Lead{
		{ID: "l1", Source: "Paid Ads", MarketingQualified: true},
		{ID: "l2", Source: "Paid Ads"},
		{ID: "l3", Source: "Referral/Partner", MarketingQualified: true},
	}
	opps := []domain.Opportunity{
		{ID: "o1", LeadSource: "Outbound", IsClosed: true, CloseOutcome: strPtr(domain.OutcomeWon)},
		{ID: "o2", LeadSource: "Outbound", IsClosed: true, CloseOutcome: strPtr(domain.OutcomeLost)},
	}
	rows := analytics.SourceEfficiency(leads, opps)
	byName := map[string]analytics.SourceFunnel{}
	for _, r := range rows {
		byName[r.Source] = r
	}
	if got := byName["Paid Ads"]; got.Leads != 2 || got.MQLs != 1 || got.MQLRate != 0.5 {
		t.Errorf("paid ads funnel %+v", got)
	}
	if got := byName["Outbound"]; got.Deals != 2 || got.Won != 1 || got.WinRate != 0.5 {
		t.Errorf("outbound funnel %+v", got)
	}
}

func TestARRByMonth(t *testing.T) {
	orders := []domain.BillingOrder{
		{ID: "b1", AccountID: "a1", Amount: money(12000), TermMonths: 12, OrderDate: day(2025, 4, 1)},
		{ID: "b2", AccountID: "a1", Amount: money(6000), TermMonths: 6, OrderDate: day(2025, 4, 20)},
		{ID: "b3", AccountID: "a2", Amount: money(24000), TermMonths: 24, OrderDate: day(2025, 5, 2)},
	}
	points := analytics.ARRByMonth(orders)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	// 12000*12/12 + 6000*12/6 = 24000
	if points[0].Month != "2025-04" || !points[0].ARR.Equal(money(24000)) {
		t.Errorf("april point %+v", points[0])
	}
	if !points[1].ARR.Equal(money(12000)) {
		t.Errorf("may ARR %s, want 12000", points[1].ARR)
	}
}

func TestRetention(t *testing.T) {
	orders := []domain.BillingOrder{
		{ID: "b1", AccountID: "a1", Amount: money(1000), OrderDate: day(2024, 1, 1)},
		{ID: "b2", AccountID: "a1", Amount: money(400), OrderDate: day(2025, 1, 1)},
		{ID: "b3", AccountID: "a2", Amount: money(2000), OrderDate: day(2024, 6, 1)},
	}
	sum := analytics.Retention(orders)
	if sum.Accounts != 2 || sum.Renewed != 1 {
		t.Fatalf("summary %+v", sum)
	}
	if sum.RenewalRate != 0.5 {
		t.Errorf("renewal rate %.2f, want 0.5", sum.RenewalRate)
	}
	if math.Abs(sum.AvgRenewalRatio-0.4) > 1e-9 {
		t.Errorf("renewal ratio %.2f, want 0.4", sum.AvgRenewalRatio)
	}
}

func TestCategoryMix(t *testing.T) {
	accounts := []domain.Account{
		{ID: "a1", Category: "customer"},
		{ID: "a2", Category: "customer"},
		{ID: "a3", Category: "prospect"},
		{ID: "a4", Category: "churned"},
	}
	mix := analytics.CategoryMix(accounts)
	if len(mix) != 3 {
		t.Fatalf("got %d categories, want 3", len(mix))
	}
	if mix[1].Category != "customer" || mix[1].Count != 2 || mix[1].Share != 0.5 {
		t.Errorf("customer slice %+v", mix[1])
	}
}

func TestQuantileAndMedian(t *testing.T) {
	xs := []float64{5, 1, 9, 3, 7}
	if m := analytics.Median(xs); m != 5 {
		t.Errorf("median %.1f, want 5", m)
	}
	if q := analytics.Quantile(xs, 0.9); q != 7 {
		t.Errorf("p90 %.1f, want 7", q)
	}
	if q := analytics.Quantile(nil, 0.5); q != 0 {
		t.Errorf("empty quantile %.1f, want 0", q)
	}
}

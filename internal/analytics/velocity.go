package analytics

import (
	"sort"

	"salesline/internal/domain"
)

type CycleStats struct {
	Count      int
	MeanDays   float64
	MedianDays float64
	P90Days    float64
}

// SalesCycle summarizes created-to-close duration over closed deals.
func SalesCycle(opps []domain.Opportunity) CycleStats {
	var days []float64
	for _, o := range opps {
		if !o.IsClosed {
			continue
		}
		days = append(days, o.CloseDate.Sub(o.CreatedAt).Hours()/24)
	}
	return CycleStats{
		Count:      len(days),
		MeanDays:   Mean(days),
		MedianDays: Median(days),
		P90Days:    Quantile(days, 0.9),
	}
}

// WinRate is won / closed. Zero when nothing closed yet.
func WinRate(opps []domain.Opportunity) float64 {
	closed, won := 0, 0
	for _, o := range opps {
		if !o.IsClosed {
			continue
		}
		closed++
		if o.CloseOutcome != nil && *o.CloseOutcome == domain.OutcomeWon {
			won++
		}
	}
	if closed == 0 {
		return 0
	}
	return float64(won) / float64(closed)
}

type SourceFunnel struct {
	Source  string
	Leads   int
	MQLs    int
	MQLRate float64
	Deals   int
	Won     int
	WinRate float64
}

// SourceEfficiency reports per-source funnel conversion. Lead and deal
// source taxonomies are independent, so a row may carry only one side.
func SourceEfficiency(leads []domain.Lead, opps []domain.Opportunity) []SourceFunnel {
	bySource := map[string]*SourceFunnel{}
	get := func(name string) *SourceFunnel {
		f, ok := bySource[name]
		if !ok {
			f = &SourceFunnel{Source: name}
			bySource[name] = f
		}
		return f
	}
	for _, l := range leads {
		f := get(l.Source)
		f.Leads++
		if l.MarketingQualified {
			f.MQLs++
		}
	}
	for _, o := range opps {
		f := get(o.LeadSource)
		f.Deals++
		if o.IsClosed && o.CloseOutcome != nil && *o.CloseOutcome == domain.OutcomeWon {
			f.Won++
		}
	}
	res := make([]SourceFunnel, 0, len(bySource))
	for _, f := range bySource {
		if f.Leads > 0 {
			f.MQLRate = float64(f.MQLs) / float64(f.Leads)
		}
		closed := 0
		for _, o := range opps {
			if o.LeadSource == f.Source && o.IsClosed {
				closed++
			}
		}
		if closed > 0 {
			f.WinRate = float64(f.Won) / float64(closed)
		}
		res = append(res, *f)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Source < res[j].Source })
	return res
}

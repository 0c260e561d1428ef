package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"salesline/internal/domain"
)

type StageSlice struct {
	Stage    string
	Count    int
	Amount   decimal.Decimal
	Weighted decimal.Decimal
}

// OpenPipelineByStage sums open opportunities per stage in canonical order.
// Weighted amounts multiply by each deal's stage probability.
func OpenPipelineByStage(opps []domain.Opportunity) []StageSlice {
	byStage := map[string]*StageSlice{}
	for _, o := range opps {
		if o.IsClosed {
			continue
		}
		s, ok := byStage[o.Stage]
		if !ok {
			s = &StageSlice{Stage: o.Stage, Amount: decimal.Zero, Weighted: decimal.Zero}
			byStage[o.Stage] = s
		}
		s.Count++
		s.Amount = s.Amount.Add(o.Amount)
		s.Weighted = s.Weighted.Add(o.Amount.Mul(decimal.NewFromFloat(o.StageProbability)).Round(2))
	}
	var res []StageSlice
	for _, stage := range domain.Stages {
		if s, ok := byStage[stage]; ok {
			res = append(res, *s)
		}
	}
	return res
}

type MonthBucket struct {
	Month    string // YYYY-MM
	Count    int
	Amount   decimal.Decimal
	Weighted decimal.Decimal
}

// ForecastByCloseMonth buckets open pipeline by expected close month. The
// weighted column is the probability-adjusted forecast.
func ForecastByCloseMonth(opps []domain.Opportunity) []MonthBucket {
	byMonth := map[string]*MonthBucket{}
	for _, o := range opps {
		if o.IsClosed {
			continue
		}
		m := o.CloseDate.Format("2006-01")
		b, ok := byMonth[m]
		if !ok {
			b = &MonthBucket{Month: m, Amount: decimal.Zero, Weighted: decimal.Zero}
			byMonth[m] = b
		}
		b.Count++
		b.Amount = b.Amount.Add(o.Amount)
		b.Weighted = b.Weighted.Add(o.Amount.Mul(decimal.NewFromFloat(o.StageProbability)).Round(2))
	}
	res := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		res = append(res, *b)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Month < res[j].Month })
	return res
}

type SourceSlice struct {
	Source string
	Count  int
	Amount decimal.Decimal
}

// PipelineBySource splits all opportunities by originating source.
func PipelineBySource(opps []domain.Opportunity) []SourceSlice {
	bySource := map[string]*SourceSlice{}
	for _, o := range opps {
		s, ok := bySource[o.LeadSource]
		if !ok {
			s = &SourceSlice{Source: o.LeadSource, Amount: decimal.Zero}
			bySource[o.LeadSource] = s
		}
		s.Count++
		s.Amount = s.Amount.Add(o.Amount)
	}
	res := make([]SourceSlice, 0, len(bySource))
	for _, s := range bySource {
		res = append(res, *s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Source < res[j].Source })
	return res
}

package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Weight is one outcome of a weighted categorical distribution. Distributions
// are ordered lists, not maps, so repeated runs with the same seed draw the
// same sequence.
type Weight struct {
	Name string  `yaml:"name"`
	P    float64 `yaml:"p"`
}

// CountWeight weights an integer outcome (contacts per lead, term months).
type CountWeight struct {
	N int     `yaml:"n"`
	P float64 `yaml:"p"`
}

// Range is an inclusive [low, high] interval for uniform draws.
type Range struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// IntRange is an inclusive [min, max] integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LogNormal parameterizes a log-normal draw; mu = ln(median).
type LogNormal struct {
	Median float64 `yaml:"median"`
	Sigma  float64 `yaml:"sigma"`
}

// Tier couples a selection weight with an integer count range.
type Tier struct {
	Name   string  `yaml:"name,omitempty"`
	Weight float64 `yaml:"weight"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

type AccountsConfig struct {
	Count            int                  `yaml:"count"`
	RecentFraction   float64              `yaml:"recent_fraction"`
	Industries       []Weight             `yaml:"industries"`
	RevenueBuckets   []Weight             `yaml:"revenue_buckets"`
	RevenueLogNormal map[string]LogNormal `yaml:"revenue_lognormal"`
	Categories       []Weight             `yaml:"categories"`
}

type LeadsConfig struct {
	InboundPerMonth  int              `yaml:"inbound_per_month"`
	OutboundPerMonth int              `yaml:"outbound_per_month"`
	Months           int              `yaml:"months"`
	Sources          []Weight         `yaml:"sources"`
	MQLRates         map[string]Range `yaml:"mql_rates"`
	WeekdayWeights   []float64        `yaml:"weekday_weights"` // Monday..Sunday
	MonthMultipliers []float64        `yaml:"month_multipliers"`
	BDRCount         int              `yaml:"bdr_count"`
	AccountLinkProb  float64          `yaml:"account_link_prob"`
}

// Total is the lead target for the configured window.
func (c LeadsConfig) Total() int {
	return (c.InboundPerMonth + c.OutboundPerMonth) * c.Months
}

type ContactsConfig struct {
	PerLead    []CountWeight `yaml:"per_lead"`
	Titles     []Weight      `yaml:"titles"`
	Geos       []Weight      `yaml:"geos"`
	MaxLagDays int           `yaml:"max_lag_days"`
}

type OpportunitiesConfig struct {
	AECount          int                  `yaml:"ae_count"`
	TopRepCount      int                  `yaml:"top_rep_count"`
	TopRepSkew       float64              `yaml:"top_rep_skew"`
	TimeSpanDays     int                  `yaml:"time_span_days"`
	Sources          []Weight             `yaml:"sources"`
	ProductLines     []Weight             `yaml:"product_lines"`
	Currency         string               `yaml:"currency"`
	OpenStages       []Weight             `yaml:"open_stages"`
	StageProbability map[string]Range     `yaml:"stage_probability"`
	CountTiers       []Tier               `yaml:"count_tiers"`
	CycleTiers       []Tier               `yaml:"cycle_tiers"`
	ClosedRatio      float64              `yaml:"closed_ratio"`
	CloseOutcomes    []Weight             `yaml:"close_outcomes"`
	ACV              map[string]LogNormal `yaml:"acv"`
	DefaultACV       LogNormal            `yaml:"default_acv"`
}

type HistoryConfig struct {
	BaseStageDays       map[string]float64 `yaml:"base_stage_days"`
	SmallDealThreshold  float64            `yaml:"small_deal_threshold"`
	MidDealThreshold    float64            `yaml:"mid_deal_threshold"`
	DealSizeMultipliers map[string]Range   `yaml:"deal_size_multipliers"`
	SourceMultipliers   map[string]Range   `yaml:"source_multipliers"`
	RepMultipliers      map[string]Range   `yaml:"rep_multipliers"`
	StatusMultipliers   map[string]Range   `yaml:"status_multipliers"`
	RepTiers            []string           `yaml:"rep_tiers"`
	AccountStatuses     []string           `yaml:"account_statuses"`
	ReentryProb         float64            `yaml:"reentry_prob"`
	NoiseSigma          float64            `yaml:"noise_sigma"`
	Reps                []string           `yaml:"reps"`
}

type ActivitiesConfig struct {
	Types          []Weight            `yaml:"types"`
	Outcomes       map[string][]Weight `yaml:"outcomes"`
	Directions     []Weight            `yaml:"directions"`
	HourWeights    []CountWeight       `yaml:"hour_weights"`
	CountBySize    map[string]IntRange `yaml:"count_by_size"`
	ContactsBySize map[string]IntRange `yaml:"contacts_by_size"`
	NoiseSigma     float64             `yaml:"noise_sigma"`
}

type BillingConfig struct {
	Currency          string        `yaml:"currency"`
	OrderCountTiers   []Tier        `yaml:"order_count_tiers"`
	TermMonths        []CountWeight `yaml:"term_months"`
	InitialLagDays    IntRange      `yaml:"initial_lag_days"`
	RenewalJitterDays int           `yaml:"renewal_jitter_days"`
	EndOfMonthBias    float64       `yaml:"end_of_month_bias"`
	SeasonalBias      float64       `yaml:"seasonal_bias"`
	PeakMonths        []int         `yaml:"peak_months"`
}

// Config models salesline.yml: every distribution, threshold, and multiplier
// the generators consume. Generators treat it as immutable input.
type Config struct {
	Accounts      AccountsConfig      `yaml:"accounts"`
	Leads         LeadsConfig         `yaml:"leads"`
	Contacts      ContactsConfig      `yaml:"contacts"`
	Opportunities OpportunitiesConfig `yaml:"opportunities"`
	History       HistoryConfig       `yaml:"history"`
	Activities    ActivitiesConfig    `yaml:"activities"`
	Billing       BillingConfig       `yaml:"billing"`
}

const fileName = "salesline.yml"

// Path returns the scenario config path for the workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, ".salesline", fileName)
}

// Load reads and validates config from workspace, falling back to defaults
// when no file exists.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates raw config bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write persists the config to the workspace.
func (c *Config) Write(workspace string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	path := Path(workspace)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sumWeights(ws []Weight) float64 {
	s := 0.0
	for _, w := range ws {
		s += w.P
	}
	return s
}

func sumCountWeights(ws []CountWeight) float64 {
	s := 0.0
	for _, w := range ws {
		s += w.P
	}
	return s
}

func checkDist(name string, ws []Weight) error {
	if len(ws) == 0 {
		return fmt.Errorf("config.%s is required", name)
	}
	for _, w := range ws {
		if w.P < 0 {
			return fmt.Errorf("config.%s has negative weight for %s", name, w.Name)
		}
	}
	if s := sumWeights(ws); math.Abs(s-1.0) > 0.01 {
		return fmt.Errorf("config.%s weights sum to %.3f, want 1.0", name, s)
	}
	return nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Accounts.Count < 0 {
		return fmt.Errorf("config.accounts.count must be >= 0")
	}
	if c.Accounts.RecentFraction < 0 || c.Accounts.RecentFraction > 1 {
		return fmt.Errorf("config.accounts.recent_fraction must be in [0,1]")
	}
	if err := checkDist("accounts.industries", c.Accounts.Industries); err != nil {
		return err
	}
	if err := checkDist("accounts.revenue_buckets", c.Accounts.RevenueBuckets); err != nil {
		return err
	}
	for _, b := range c.Accounts.RevenueBuckets {
		ln, ok := c.Accounts.RevenueLogNormal[b.Name]
		if !ok {
			return fmt.Errorf("config.accounts.revenue_lognormal missing bucket %s", b.Name)
		}
		if ln.Median <= 0 || ln.Sigma <= 0 {
			return fmt.Errorf("config.accounts.revenue_lognormal.%s must have positive median and sigma", b.Name)
		}
	}
	if err := checkDist("accounts.categories", c.Accounts.Categories); err != nil {
		return err
	}

	if c.Leads.Months <= 0 {
		return fmt.Errorf("config.leads.months must be > 0")
	}
	if c.Leads.BDRCount <= 0 {
		return fmt.Errorf("config.leads.bdr_count must be > 0")
	}
	if err := checkDist("leads.sources", c.Leads.Sources); err != nil {
		return err
	}
	for _, src := range c.Leads.Sources {
		r, ok := c.Leads.MQLRates[src.Name]
		if !ok {
			return fmt.Errorf("config.leads.mql_rates missing source %s", src.Name)
		}
		if r.Low < 0 || r.High > 1 || r.Low > r.High {
			return fmt.Errorf("config.leads.mql_rates.%s must satisfy 0 <= low <= high <= 1", src.Name)
		}
	}
	if len(c.Leads.WeekdayWeights) != 7 {
		return fmt.Errorf("config.leads.weekday_weights needs 7 entries (Monday first)")
	}
	if len(c.Leads.MonthMultipliers) != 12 {
		return fmt.Errorf("config.leads.month_multipliers needs 12 entries")
	}
	if c.Leads.AccountLinkProb < 0 || c.Leads.AccountLinkProb > 1 {
		return fmt.Errorf("config.leads.account_link_prob must be in [0,1]")
	}

	if s := sumCountWeights(c.Contacts.PerLead); math.Abs(s-1.0) > 0.01 {
		return fmt.Errorf("config.contacts.per_lead weights sum to %.3f, want 1.0", s)
	}
	if err := checkDist("contacts.titles", c.Contacts.Titles); err != nil {
		return err
	}
	if err := checkDist("contacts.geos", c.Contacts.Geos); err != nil {
		return err
	}
	if c.Contacts.MaxLagDays < 0 {
		return fmt.Errorf("config.contacts.max_lag_days must be >= 0")
	}

	o := c.Opportunities
	if o.AECount <= 0 {
		return fmt.Errorf("config.opportunities.ae_count must be > 0")
	}
	if o.TopRepCount <= 0 || o.TopRepCount > o.AECount {
		return fmt.Errorf("config.opportunities.top_rep_count must be in [1, ae_count]")
	}
	if o.TimeSpanDays <= 0 {
		return fmt.Errorf("config.opportunities.time_span_days must be > 0")
	}
	if err := checkDist("opportunities.sources", o.Sources); err != nil {
		return err
	}
	if err := checkDist("opportunities.product_lines", o.ProductLines); err != nil {
		return err
	}
	if err := checkDist("opportunities.open_stages", o.OpenStages); err != nil {
		return err
	}
	for _, st := range o.OpenStages {
		if _, ok := o.StageProbability[st.Name]; !ok {
			return fmt.Errorf("config.opportunities.stage_probability missing stage %s", st.Name)
		}
	}
	if err := checkTiers("opportunities.count_tiers", o.CountTiers); err != nil {
		return err
	}
	if err := checkTiers("opportunities.cycle_tiers", o.CycleTiers); err != nil {
		return err
	}
	if o.ClosedRatio < 0 || o.ClosedRatio > 1 {
		return fmt.Errorf("config.opportunities.closed_ratio must be in [0,1]")
	}
	if err := checkDist("opportunities.close_outcomes", o.CloseOutcomes); err != nil {
		return err
	}
	if o.DefaultACV.Median <= 0 {
		return fmt.Errorf("config.opportunities.default_acv.median must be > 0")
	}

	h := c.History
	if h.SmallDealThreshold <= 0 || h.MidDealThreshold <= h.SmallDealThreshold {
		return fmt.Errorf("config.history deal thresholds must satisfy 0 < small < mid")
	}
	if h.ReentryProb < 0 || h.ReentryProb > 1 {
		return fmt.Errorf("config.history.reentry_prob must be in [0,1]")
	}
	if len(h.Reps) == 0 {
		return fmt.Errorf("config.history.reps is required")
	}
	for _, stage := range []string{"Discovery", "Proposal", "Negotiation"} {
		if h.BaseStageDays[stage] <= 0 {
			return fmt.Errorf("config.history.base_stage_days.%s must be > 0", stage)
		}
	}
	for _, tier := range h.RepTiers {
		if _, ok := h.RepMultipliers[tier]; !ok {
			return fmt.Errorf("config.history.rep_multipliers missing tier %s", tier)
		}
	}
	for _, status := range h.AccountStatuses {
		if _, ok := h.StatusMultipliers[status]; !ok {
			return fmt.Errorf("config.history.status_multipliers missing status %s", status)
		}
	}

	a := c.Activities
	if err := checkDist("activities.types", a.Types); err != nil {
		return err
	}
	for _, tp := range a.Types {
		if err := checkDist("activities.outcomes."+tp.Name, a.Outcomes[tp.Name]); err != nil {
			return err
		}
	}
	if err := checkDist("activities.directions", a.Directions); err != nil {
		return err
	}
	if len(a.HourWeights) == 0 {
		return fmt.Errorf("config.activities.hour_weights is required")
	}
	for _, size := range []string{"small", "mid", "large"} {
		if r, ok := a.CountBySize[size]; !ok || r.Min < 1 || r.Max < r.Min {
			return fmt.Errorf("config.activities.count_by_size.%s must have 1 <= min <= max", size)
		}
		if r, ok := a.ContactsBySize[size]; !ok || r.Min < 1 || r.Max < r.Min {
			return fmt.Errorf("config.activities.contacts_by_size.%s must have 1 <= min <= max", size)
		}
	}

	b := c.Billing
	if err := checkTiers("billing.order_count_tiers", b.OrderCountTiers); err != nil {
		return err
	}
	if s := sumCountWeights(b.TermMonths); math.Abs(s-1.0) > 0.01 {
		return fmt.Errorf("config.billing.term_months weights sum to %.3f, want 1.0", s)
	}
	if b.InitialLagDays.Min < 0 || b.InitialLagDays.Max < b.InitialLagDays.Min {
		return fmt.Errorf("config.billing.initial_lag_days must have 0 <= min <= max")
	}
	return nil
}

func checkTiers(name string, tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("config.%s is required", name)
	}
	total := 0.0
	for _, t := range tiers {
		if t.Min < 1 || t.Max < t.Min {
			return fmt.Errorf("config.%s tier %s must have 1 <= min <= max", name, t.Name)
		}
		total += t.Weight
	}
	if math.Abs(total-1.0) > 0.01 {
		return fmt.Errorf("config.%s weights sum to %.3f, want 1.0", name, total)
	}
	return nil
}

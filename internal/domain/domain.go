package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Close outcomes for terminal opportunities.
const (
	OutcomeWon          = "closed_won"
	OutcomeLost         = "closed_lost"
	OutcomeDisqualified = "disqualified"
)

// Canonical pipeline stages in traversal order.
var Stages = []string{"Prospecting", "Discovery", "Proposal", "Negotiation", "Closed"}

const StageClosed = "Closed"

type Account struct {
	ID            string          `json:"account_id"`
	Name          string          `json:"name"`
	Industry      string          `json:"industry"`
	Category      string          `json:"category"`
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`
	Region        string          `json:"region,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Lead struct {
	ID                 string    `json:"lead_id"`
	CreatedAt          time.Time `json:"created_at"`
	Source             string    `json:"lead_source"`
	OwnerID            int       `json:"owner_id"`
	Email              string    `json:"email"`
	AccountID          *string   `json:"account_id,omitempty"`
	MarketingQualified bool      `json:"is_marketing_qualified"`
}

type Contact struct {
	ID        string    `json:"contact_id"`
	LeadID    string    `json:"lead_id"`
	AccountID *string   `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Geo       string    `json:"geo"`
}

type Opportunity struct {
	ID               string          `json:"opportunity_id"`
	AccountID        string          `json:"account_id"`
	OwnerID          int             `json:"owner_id"`
	CreatedAt        time.Time       `json:"created_at"`
	CloseDate        time.Time       `json:"close_date"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Stage            string          `json:"stage"`
	StageProbability float64         `json:"stage_probability"`
	LeadSource       string          `json:"lead_source"`
	ProductLine      string          `json:"product_line"`
	IsClosed         bool            `json:"is_closed"`
	CloseOutcome     *string         `json:"close_outcome,omitempty"`
}

type StageHistory struct {
	ID            string    `json:"stage_history_id"`
	OpportunityID string    `json:"opportunity_id"`
	StageName     string    `json:"stage_name"`
	EnteredAt     time.Time `json:"entered_at"`
	ChangedBy     string    `json:"changed_by"`
	Notes         string    `json:"notes,omitempty"`
}

type Activity struct {
	ID              string    `json:"activity_id"`
	OpportunityID   string    `json:"opportunity_id"`
	ContactID       string    `json:"contact_id"`
	Type            string    `json:"activity_type"`
	OccurredAt      time.Time `json:"occurred_at"`
	Direction       string    `json:"direction"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	Outcome         string    `json:"outcome"`
}

type BillingOrder struct {
	ID            string          `json:"order_id"`
	AccountID     string          `json:"account_id"`
	OpportunityID string          `json:"opportunity_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	OrderDate     time.Time       `json:"order_date"`
	TermMonths    int             `json:"term_months"`
}

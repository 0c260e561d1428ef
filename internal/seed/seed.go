// Package seed orchestrates the table generators in dependency order and
// persists their output.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"salesline/internal/config"
	"salesline/internal/events"
	"salesline/internal/gen"
	"salesline/internal/repo"
)

type Seeder struct {
	DB     *sql.DB
	Repo   repo.Repo
	Events events.Writer
	Cfg    *config.Config
	Rand   *gen.Rand
	Log    zerolog.Logger
	Now    func() time.Time
}

func New(db *sql.DB, cfg *config.Config, seedValue int64, log zerolog.Logger) *Seeder {
	return &Seeder{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Events: events.Writer{DB: db},
		Cfg:    cfg,
		Rand:   gen.NewRand(seedValue),
		Log:    log,
		Now:    time.Now,
	}
}

func (s *Seeder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// record logs and journals one completed generation step.
func (s *Seeder) record(ctx context.Context, table string, rows int) error {
	s.Log.Info().Str("table", table).Int("rows", rows).Msg("seeded")
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	err = s.Events.Append(ctx, tx, "seed", table, "seeder", events.EventPayload{"rows": rows})
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Seeder) Accounts(ctx context.Context) (int, error) {
	accounts := gen.Accounts(s.Rand, s.Cfg.Accounts, s.now())
	if err := s.Repo.InsertAccounts(ctx, accounts); err != nil {
		return 0, fmt.Errorf("persist accounts: %w", err)
	}
	return len(accounts), s.record(ctx, "accounts", len(accounts))
}

func (s *Seeder) Leads(ctx context.Context) (int, error) {
	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load accounts: %w", err)
	}
	leads := gen.Leads(s.Rand, s.Cfg.Leads, accounts, s.now())
	if err := s.Repo.InsertLeads(ctx, leads); err != nil {
		return 0, fmt.Errorf("persist leads: %w", err)
	}
	return len(leads), s.record(ctx, "leads", len(leads))
}

func (s *Seeder) Contacts(ctx context.Context) (int, error) {
	leads, err := s.Repo.ListLeads(ctx)
	if err != nil {
		return 0, fmt.Errorf("load leads: %w", err)
	}
	contacts := gen.Contacts(s.Rand, s.Cfg.Contacts, leads)
	if err := s.Repo.InsertContacts(ctx, contacts); err != nil {
		return 0, fmt.Errorf("persist contacts: %w", err)
	}
	return len(contacts), s.record(ctx, "contacts", len(contacts))
}

func (s *Seeder) Opportunities(ctx context.Context) (int, error) {
	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load accounts: %w", err)
	}
	opps, err := gen.Opportunities(s.Rand, s.Cfg.Opportunities, accounts, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.Repo.InsertOpportunities(ctx, opps); err != nil {
		return 0, fmt.Errorf("persist opportunities: %w", err)
	}
	return len(opps), s.record(ctx, "opportunities", len(opps))
}

func (s *Seeder) StageHistory(ctx context.Context) (int, error) {
	opps, err := s.Repo.ListOpportunities(ctx)
	if err != nil {
		return 0, fmt.Errorf("load opportunities: %w", err)
	}
	rows := gen.StageHistory(s.Rand, s.Cfg.History, opps, s.now())
	if err := s.Repo.InsertStageHistory(ctx, rows); err != nil {
		return 0, fmt.Errorf("persist stage history: %w", err)
	}
	return len(rows), s.record(ctx, "opportunity_stage_history", len(rows))
}

func (s *Seeder) Activities(ctx context.Context) (int, error) {
	opps, err := s.Repo.ListOpportunities(ctx)
	if err != nil {
		return 0, fmt.Errorf("load opportunities: %w", err)
	}
	contacts, err := s.Repo.ListContacts(ctx)
	if err != nil {
		return 0, fmt.Errorf("load contacts: %w", err)
	}
	acts, err := gen.Activities(s.Rand, s.Cfg.Activities, s.Cfg.History, s.Cfg.Leads.WeekdayWeights, opps, contacts, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.Repo.InsertActivities(ctx, acts); err != nil {
		return 0, fmt.Errorf("persist activities: %w", err)
	}
	return len(acts), s.record(ctx, "activities", len(acts))
}

func (s *Seeder) BillingOrders(ctx context.Context) (int, error) {
	opps, err := s.Repo.ListOpportunities(ctx)
	if err != nil {
		return 0, fmt.Errorf("load opportunities: %w", err)
	}
	orders, err := gen.BillingOrders(s.Rand, s.Cfg.Billing, opps, s.now())
	if err != nil {
		return 0, err
	}
	if err := s.Repo.InsertBillingOrders(ctx, orders); err != nil {
		return 0, fmt.Errorf("persist billing orders: %w", err)
	}
	return len(orders), s.record(ctx, "billing_orders", len(orders))
}

// All seeds every table in dependency order and returns per-table row
// counts.
func (s *Seeder) All(ctx context.Context) (map[string]int, error) {
	steps := []struct {
		table string
		run   func(context.Context) (int, error)
	}{
		{"accounts", s.Accounts},
		{"leads", s.Leads},
		{"contacts", s.Contacts},
		{"opportunities", s.Opportunities},
		{"opportunity_stage_history", s.StageHistory},
		{"activities", s.Activities},
		{"billing_orders", s.BillingOrders},
	}
	counts := make(map[string]int, len(steps))
	for _, step := range steps {
		n, err := step.run(ctx)
		if err != nil {
			return counts, fmt.Errorf("seed %s: %w", step.table, err)
		}
		counts[step.table] = n
	}
	return counts, nil
}

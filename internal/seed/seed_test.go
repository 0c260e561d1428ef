package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"salesline/internal/config"
	"salesline/internal/db"
	"salesline/internal/migrate"
	"salesline/internal/seed"
)

func newTestSeeder(t *testing.T, seedValue int64) (*seed.Seeder, context.Context) {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Default()
	cfg.Accounts.Count = 30
	cfg.Leads.InboundPerMonth = 10
	cfg.Leads.OutboundPerMonth = 5
	cfg.Leads.AccountLinkProb = 0.8
	s := seed.New(conn, cfg, seedValue, zerolog.Nop())
	s.Now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return s, context.Background()
}

func TestSeedAll(t *testing.T) {
	s, ctx := newTestSeeder(t, 1)
	counts, err := s.All(ctx)
	if err != nil {
		t.Fatalf("seed all: %v", err)
	}
	if counts["accounts"] != 30 {
		t.Fatalf("got %d accounts, want 30", counts["accounts"])
	}
	if counts["leads"] != 180 {
		t.Fatalf("got %d leads, want 180", counts["leads"])
	}
	for _, table := range []string{"contacts", "opportunities", "opportunity_stage_history", "activities", "billing_orders"} {
		if counts[table] == 0 {
			t.Fatalf("table %s seeded zero rows", table)
		}
	}

	stored, err := s.Repo.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	for table, n := range counts {
		if stored[table] != n {
			t.Fatalf("table %s stored %d rows, seeder reported %d", table, stored[table], n)
		}
	}

	events, err := s.Repo.LatestEvents(ctx, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 7 {
		t.Fatalf("got %d seed events, want 7", len(events))
	}
}

func TestSeedRoundTripPreservesRows(t *testing.T) {
	s, ctx := newTestSeeder(t, 2)
	if _, err := s.All(ctx); err != nil {
		t.Fatalf("seed all: %v", err)
	}
	opps, err := s.Repo.ListOpportunities(ctx)
	if err != nil {
		t.Fatalf("list opportunities: %v", err)
	}
	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	ids := map[string]bool{}
	for _, a := range accounts {
		ids[a.ID] = true
	}
	for _, o := range opps {
		if !ids[o.AccountID] {
			t.Fatalf("stored opportunity %s references missing account %s", o.ID, o.AccountID)
		}
		if o.CloseDate.Before(o.CreatedAt) {
			t.Fatalf("stored opportunity %s lost date ordering", o.ID)
		}
	}
}

func TestSeedOpportunitiesWithoutAccountsFails(t *testing.T) {
	s, ctx := newTestSeeder(t, 3)
	if _, err := s.Opportunities(ctx); err == nil {
		t.Fatal("expected error seeding opportunities before accounts")
	}
}

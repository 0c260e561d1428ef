package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesline/internal/config"
	"salesline/internal/db"
	"salesline/internal/domain"
	"salesline/internal/gen"
	"salesline/internal/migrate"
	"salesline/internal/repo"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (repo.Repo, context.Context) {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo.Repo{DB: conn}, context.Background()
}

func TestAccountsRoundTrip(t *testing.T) {
	r, ctx := newTestRepo(t)
	cfg := config.Default().Accounts
	cfg.Count = 25
	accounts := gen.Accounts(gen.NewRand(1), cfg, testNow)
	if err := r.InsertAccounts(ctx, accounts); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := r.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 25 {
		t.Fatalf("got %d accounts, want 25", len(got))
	}
	byID := map[string]domain.Account{}
	for _, a := range got {
		byID[a.ID] = a
	}
	for _, want := range accounts {
		a, ok := byID[want.ID]
		if !ok {
			t.Fatalf("account %s not stored", want.ID)
		}
		if a.Name != want.Name || a.Industry != want.Industry {
			t.Fatalf("account %s round-trip mismatch: %+v vs %+v", want.ID, a, want)
		}
		if !a.AnnualRevenue.Equal(want.AnnualRevenue) {
			t.Fatalf("account %s revenue %s, want %s", want.ID, a.AnnualRevenue, want.AnnualRevenue)
		}
		if !a.CreatedAt.Equal(want.CreatedAt) {
			t.Fatalf("account %s created %s, want %s", want.ID, a.CreatedAt, want.CreatedAt)
		}
	}
}

func TestGetAccountNotFound(t *testing.T) {
	r, ctx := newTestRepo(t)
	if _, err := r.GetAccount(ctx, "missing"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestOpportunityRoundTripPreservesOutcome(t *testing.T) {
	r, ctx := newTestRepo(t)
	cfg := config.Default()
	cfg.Accounts.Count = 10
	rng := gen.NewRand(2)
	accounts := gen.Accounts(rng, cfg.Accounts, testNow)
	if err := r.InsertAccounts(ctx, accounts); err != nil {
		t.Fatalf("insert accounts: %v", err)
	}
	opps, err := gen.Opportunities(rng, cfg.Opportunities, accounts, testNow)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := r.InsertOpportunities(ctx, opps); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := r.ListOpportunities(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(opps) {
		t.Fatalf("got %d opportunities, want %d", len(got), len(opps))
	}
	byID := map[string]domain.Opportunity{}
	for _, o := range got {
		byID[o.ID] = o
	}
	for _, want := range opps {
		o := byID[want.ID]
		if o.IsClosed != want.IsClosed || o.Stage != want.Stage {
			t.Fatalf("opportunity %s state mismatch", want.ID)
		}
		switch {
		case want.CloseOutcome == nil && o.CloseOutcome != nil:
			t.Fatalf("opportunity %s gained an outcome", want.ID)
		case want.CloseOutcome != nil && (o.CloseOutcome == nil || *o.CloseOutcome != *want.CloseOutcome):
			t.Fatalf("opportunity %s lost its outcome", want.ID)
		}
	}
}

func TestCountsEmptyDatabase(t *testing.T) {
	r, ctx := newTestRepo(t)
	counts, err := r.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	for table, n := range counts {
		if n != 0 {
			t.Fatalf("table %s has %d rows in a fresh database", table, n)
		}
	}
	if len(counts) != 7 {
		t.Fatalf("got %d tables, want 7", len(counts))
	}
}

func TestLeadForeignKeyEnforced(t *testing.T) {
	r, ctx := newTestRepo(t)
	acct := "does-not-exist"
	lead := domain.Lead{
		ID:        "l1",
		CreatedAt: testNow,
		Source:    "Paid Ads",
		OwnerID:   1,
		Email:     "x@example.com",
		AccountID: &acct,
	}
	if err := r.InsertLeads(ctx, []domain.Lead{lead}); err == nil {
		t.Fatal("expected foreign key violation")
	}
}

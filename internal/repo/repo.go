package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salesline/internal/domain"
)

// batchSize bounds the number of rows per insert transaction.
const batchSize = 500

type Repo struct {
	DB *sql.DB
}

var ErrNotFound = errors.New("not found")

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTS(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// inBatches runs fn once per chunk of n rows, each chunk in its own transaction.
func (r Repo) inBatches(ctx context.Context, n int, fn func(tx *sql.Tx, lo, hi int) error) error {
	for lo := 0; lo < n; lo += batchSize {
		hi := lo + batchSize
		if hi > n {
			hi = n
		}
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx, lo, hi); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func (r Repo) InsertAccounts(ctx context.Context, accounts []domain.Account) error {
	return r.inBatches(ctx, len(accounts), func(tx *sql.Tx, lo, hi int) error {
		for _, a := range accounts[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO accounts(account_id,name,industry,category,annual_revenue,region,created_at) VALUES (?,?,?,?,?,?,?)`,
				a.ID, a.Name, a.Industry, a.Category, a.AnnualRevenue.String(), a.Region, ts(a.CreatedAt))
			if err != nil {
				return fmt.Errorf("insert account %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT account_id,name,industry,category,annual_revenue,region,created_at FROM accounts ORDER BY created_at, account_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Account
	for rows.Next() {
		var a domain.Account
		var rev, created string
		if err := rows.Scan(&a.ID, &a.Name, &a.Industry, &a.Category, &rev, &a.Region, &created); err != nil {
			return nil, err
		}
		if a.AnnualRevenue, err = parseDecimal(rev); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTS(created); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r Repo) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	var a domain.Account
	var rev, created string
	err := r.DB.QueryRowContext(ctx, `SELECT account_id,name,industry,category,annual_revenue,region,created_at FROM accounts WHERE account_id=?`, id).
		Scan(&a.ID, &a.Name, &a.Industry, &a.Category, &rev, &a.Region, &created)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	if err != nil {
		return a, err
	}
	if a.AnnualRevenue, err = parseDecimal(rev); err != nil {
		return a, err
	}
	a.CreatedAt, err = parseTS(created)
	return a, err
}

// Counts reports row counts for every generated table.
func (r Repo) Counts(ctx context.Context) (map[string]int, error) {
	tables := []string{"accounts", "leads", "contacts", "opportunities", "opportunity_stage_history", "activities", "billing_orders"}
	res := make(map[string]int, len(tables))
	for _, t := range tables {
		var n int
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		res[t] = n
	}
	return res, nil
}

type Event struct {
	ID      int64
	TS      time.Time
	Type    string
	Entity  string
	ActorID string
	Payload string
}

func (r Repo) LatestEvents(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id,ts,type,entity,actor_id,payload_json FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Event
	for rows.Next() {
		var e Event
		var t string
		if err := rows.Scan(&e.ID, &t, &e.Type, &e.Entity, &e.ActorID, &e.Payload); err != nil {
			return nil, err
		}
		if e.TS, err = parseTS(t); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

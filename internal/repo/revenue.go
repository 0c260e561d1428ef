package repo

import (
	"context"
	"database/sql"
	"fmt"

	"salesline/internal/domain"
)

func (r Repo) InsertActivities(ctx context.Context, acts []domain.Activity) error {
	return r.inBatches(ctx, len(acts), func(tx *sql.Tx, lo, hi int) error {
		for _, a := range acts[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO activities(activity_id,opportunity_id,contact_id,activity_type,occurred_at,direction,duration_seconds,outcome) VALUES (?,?,?,?,?,?,?,?)`,
				a.ID, a.OpportunityID, a.ContactID, a.Type, ts(a.OccurredAt), a.Direction, nullableInt(a.DurationSeconds), a.Outcome)
			if err != nil {
				return fmt.Errorf("insert activity %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT activity_id,opportunity_id,contact_id,activity_type,occurred_at,direction,duration_seconds,outcome FROM activities ORDER BY occurred_at, activity_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var occurred string
		var dur sql.NullInt64
		if err := rows.Scan(&a.ID, &a.OpportunityID, &a.ContactID, &a.Type, &occurred, &a.Direction, &dur, &a.Outcome); err != nil {
			return nil, err
		}
		if a.OccurredAt, err = parseTS(occurred); err != nil {
			return nil, err
		}
		if dur.Valid {
			v := int(dur.Int64)
			a.DurationSeconds = &v
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r Repo) InsertBillingOrders(ctx context.Context, orders []domain.BillingOrder) error {
	return r.inBatches(ctx, len(orders), func(tx *sql.Tx, lo, hi int) error {
		for _, o := range orders[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO billing_orders(order_id,account_id,opportunity_id,amount,currency,order_date,term_months) VALUES (?,?,?,?,?,?,?)`,
				o.ID, o.AccountID, o.OpportunityID, o.Amount.String(), o.Currency, ts(o.OrderDate), o.TermMonths)
			if err != nil {
				return fmt.Errorf("insert billing order %s: %w", o.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListBillingOrders(ctx context.Context) ([]domain.BillingOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT order_id,account_id,opportunity_id,amount,currency,order_date,term_months FROM billing_orders ORDER BY order_date, order_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.BillingOrder
	for rows.Next() {
		var o domain.BillingOrder
		var amount, date string
		if err := rows.Scan(&o.ID, &o.AccountID, &o.OpportunityID, &amount, &o.Currency, &date, &o.TermMonths); err != nil {
			return nil, err
		}
		if o.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if o.OrderDate, err = parseTS(date); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

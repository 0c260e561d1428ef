package repo

import (
	"context"
	"database/sql"
	"fmt"

	"salesline/internal/domain"
)

func (r Repo) InsertLeads(ctx context.Context, leads []domain.Lead) error {
	return r.inBatches(ctx, len(leads), func(tx *sql.Tx, lo, hi int) error {
		for _, l := range leads[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO leads(lead_id,created_at,lead_source,owner_id,email,account_id,is_marketing_qualified) VALUES (?,?,?,?,?,?,?)`,
				l.ID, ts(l.CreatedAt), l.Source, l.OwnerID, l.Email, nullable(l.AccountID), l.MarketingQualified)
			if err != nil {
				return fmt.Errorf("insert lead %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT lead_id,created_at,lead_source,owner_id,email,account_id,is_marketing_qualified FROM leads ORDER BY created_at, lead_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var created string
		var acct sql.NullString
		if err := rows.Scan(&l.ID, &created, &l.Source, &l.OwnerID, &l.Email, &acct, &l.MarketingQualified); err != nil {
			return nil, err
		}
		if l.CreatedAt, err = parseTS(created); err != nil {
			return nil, err
		}
		if acct.Valid {
			v := acct.String
			l.AccountID = &v
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r Repo) InsertContacts(ctx context.Context, contacts []domain.Contact) error {
	return r.inBatches(ctx, len(contacts), func(tx *sql.Tx, lo, hi int) error {
		for _, c := range contacts[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO contacts(contact_id,lead_id,account_id,created_at,email,title,geo) VALUES (?,?,?,?,?,?,?)`,
				c.ID, c.LeadID, nullable(c.AccountID), ts(c.CreatedAt), c.Email, c.Title, c.Geo)
			if err != nil {
				return fmt.Errorf("insert contact %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT contact_id,lead_id,account_id,created_at,email,title,geo FROM contacts ORDER BY created_at, contact_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var created string
		var acct sql.NullString
		if err := rows.Scan(&c.ID, &c.LeadID, &acct, &created, &c.Email, &c.Title, &c.Geo); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTS(created); err != nil {
			return nil, err
		}
		if acct.Valid {
			v := acct.String
			c.AccountID = &v
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r Repo) InsertOpportunities(ctx context.Context, opps []domain.Opportunity) error {
	return r.inBatches(ctx, len(opps), func(tx *sql.Tx, lo, hi int) error {
		for _, o := range opps[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO opportunities(opportunity_id,account_id,owner_id,created_at,close_date,amount,currency,stage,stage_probability,lead_source,product_line,is_closed,close_outcome) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
				o.ID, o.AccountID, o.OwnerID, ts(o.CreatedAt), ts(o.CloseDate), o.Amount.String(), o.Currency,
				o.Stage, o.StageProbability, o.LeadSource, o.ProductLine, o.IsClosed, nullable(o.CloseOutcome))
			if err != nil {
				return fmt.Errorf("insert opportunity %s: %w", o.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT opportunity_id,account_id,owner_id,created_at,close_date,amount,currency,stage,stage_probability,lead_source,product_line,is_closed,close_outcome FROM opportunities ORDER BY created_at, opportunity_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Opportunity
	for rows.Next() {
		var o domain.Opportunity
		var created, close, amount string
		var outcome sql.NullString
		if err := rows.Scan(&o.ID, &o.AccountID, &o.OwnerID, &created, &close, &amount, &o.Currency,
			&o.Stage, &o.StageProbability, &o.LeadSource, &o.ProductLine, &o.IsClosed, &outcome); err != nil {
			return nil, err
		}
		if o.CreatedAt, err = parseTS(created); err != nil {
			return nil, err
		}
		if o.CloseDate, err = parseTS(close); err != nil {
			return nil, err
		}
		if o.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if outcome.Valid {
			v := outcome.String
			o.CloseOutcome = &v
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r Repo) InsertStageHistory(ctx context.Context, rows []domain.StageHistory) error {
	return r.inBatches(ctx, len(rows), func(tx *sql.Tx, lo, hi int) error {
		for _, h := range rows[lo:hi] {
			_, err := tx.ExecContext(ctx, `INSERT INTO opportunity_stage_history(stage_history_id,opportunity_id,stage_name,entered_at,changed_by,notes) VALUES (?,?,?,?,?,?)`,
				h.ID, h.OpportunityID, h.StageName, ts(h.EnteredAt), h.ChangedBy, h.Notes)
			if err != nil {
				return fmt.Errorf("insert stage history %s: %w", h.ID, err)
			}
		}
		return nil
	})
}

func (r Repo) ListStageHistory(ctx context.Context) ([]domain.StageHistory, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT stage_history_id,opportunity_id,stage_name,entered_at,changed_by,notes FROM opportunity_stage_history ORDER BY opportunity_id, entered_at, stage_history_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.StageHistory
	for rows.Next() {
		var h domain.StageHistory
		var entered string
		if err := rows.Scan(&h.ID, &h.OpportunityID, &h.StageName, &entered, &h.ChangedBy, &h.Notes); err != nil {
			return nil, err
		}
		if h.EnteredAt, err = parseTS(entered); err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

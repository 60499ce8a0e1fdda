package b2b

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const requestColumns = `id, company_name, contact_name, email, phone, vat_number,
       lines, budget, message, status, admin_notes, reviewed_at, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, req *Request) error {
	lines, err := json.Marshal(req.Lines)
	if err != nil {
		return fmt.Errorf("marshal request lines: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO b2b_requests
		  (id, company_name, contact_name, email, phone, vat_number,
		   lines, budget, message, status, admin_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		req.ID, req.CompanyName, req.ContactName, req.Email, req.Phone, req.VATNumber,
		lines, req.Budget, req.Message, req.Status, req.AdminNotes)
	if err != nil {
		return fmt.Errorf("insert b2b request: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM b2b_requests WHERE id=$1`, parsedID))
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM b2b_requests`
	var args []interface{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, req *Request) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE b2b_requests
		SET status=$1, admin_notes=$2, reviewed_at=$3, updated_at=$4
		WHERE id=$5`,
		req.Status, req.AdminNotes, req.ReviewedAt, time.Now(), req.ID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*Request, error) {
	req := &Request{}
	var lines []byte
	var reviewedAt sql.NullTime
	err := row.Scan(
		&req.ID, &req.CompanyName, &req.ContactName, &req.Email, &req.Phone, &req.VATNumber,
		&lines, &req.Budget, &req.Message, &req.Status, &req.AdminNotes,
		&reviewedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &req.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal request lines: %w", err)
		}
	}
	if reviewedAt.Valid {
		req.ReviewedAt = &reviewedAt.Time
	}
	return req, nil
}

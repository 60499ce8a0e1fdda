package address

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const addressColumns = `id, user_id, label, full_name, company, street, city,
       postal_code, country, phone, is_default, created_at, updated_at`

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM saved_addresses
		 WHERE user_id = $1 ORDER BY is_default DESC, created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*Address
	for rows.Next() {
		a := &Address{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.FullName, &a.Company,
			&a.Street, &a.City, &a.PostalCode, &a.Country, &a.Phone,
			&a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*Address, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	a := &Address{}
	err = r.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM saved_addresses WHERE user_id = $1 AND id = $2`,
		userID, parsedID).
		Scan(&a.ID, &a.UserID, &a.Label, &a.FullName, &a.Company,
			&a.Street, &a.City, &a.PostalCode, &a.Country, &a.Phone,
			&a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a *Address) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_addresses
		  (id, user_id, label, full_name, company, street, city, postal_code, country, phone, is_default)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.UserID, a.Label, a.FullName, a.Company,
		a.Street, a.City, a.PostalCode, a.Country, a.Phone, a.IsDefault)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *postgresRepo) Update(ctx context.Context, a *Address) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE saved_addresses
		SET label=$1, full_name=$2, company=$3, street=$4, city=$5,
		    postal_code=$6, country=$7, phone=$8, updated_at=$9
		WHERE user_id=$10 AND id=$11`,
		a.Label, a.FullName, a.Company, a.Street, a.City,
		a.PostalCode, a.Country, a.Phone, time.Now(), a.UserID, a.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_addresses WHERE user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetDefault clears every other default flag and sets the new one inside a
// single transaction, so the at-most-one-default invariant holds even if two
// requests race.
func (r *postgresRepo) SetDefault(ctx context.Context, userID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE saved_addresses SET is_default=false, updated_at=$1 WHERE user_id=$2 AND is_default`,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("clear defaults: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE saved_addresses SET is_default=true, updated_at=$1 WHERE user_id=$2 AND id=$3`,
		time.Now(), userID, id)
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *postgresRepo) ClearDefaults(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE saved_addresses SET is_default=false, updated_at=$1 WHERE user_id=$2 AND is_default`,
		time.Now(), userID)
	return err
}

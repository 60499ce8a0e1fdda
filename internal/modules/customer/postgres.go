package customer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Cancelled orders do not count toward totals; the LEFT JOIN keeps customers
// with no orders in the projection.
const summaryQuery = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.created_at,
	       COUNT(o.id)                 AS order_count,
	       COALESCE(SUM(o.total), 0)   AS total_spent,
	       MAX(o.created_at)           AS last_order_at
	FROM users u
	LEFT JOIN orders o ON o.user_id = u.id AND o.status <> 'cancelled'
	WHERE u.role = 'customer'`

var sortClauses = map[string]string{
	"name":   ` ORDER BY u.last_name ASC, u.first_name ASC`,
	"orders": ` ORDER BY order_count DESC, u.created_at ASC`,
	"spent":  ` ORDER BY total_spent DESC, u.created_at ASC`,
}

func (r *postgresRepo) List(ctx context.Context, search, sortBy string) ([]*Summary, error) {
	query := summaryQuery
	var args []interface{}
	if search != "" {
		query += ` AND (u.email ILIKE $1 OR u.first_name ILIKE $1 OR u.last_name ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += ` GROUP BY u.id`

	clause, ok := sortClauses[sortBy]
	if !ok {
		clause = sortClauses["name"]
	}
	query += clause

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Summary
	for rows.Next() {
		c, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID string) (*Summary, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, summaryQuery+` AND u.id = $1 GROUP BY u.id`, uid)
	return scanSummary(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummary(row rowScanner) (*Summary, error) {
	c := &Summary{}
	var lastOrderAt sql.NullTime
	err := row.Scan(&c.UserID, &c.Email, &c.FirstName, &c.LastName, &c.CreatedAt,
		&c.OrderCount, &c.TotalSpent, &lastOrderAt)
	if err != nil {
		return nil, err
	}
	if lastOrderAt.Valid {
		c.LastOrderAt = &lastOrderAt.Time
	}
	return c, nil
}

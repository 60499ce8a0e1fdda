package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetOrCreateCart(ctx context.Context, userID string) (*Cart, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	c := &Cart{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts WHERE user_id = $1`, uid).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		c = &Cart{ID: uuid.New(), UserID: uid, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO carts (id, user_id) VALUES ($1, $2)`, c.ID, c.UserID)
		if err != nil {
			return nil, fmt.Errorf("create cart: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	c.Items, err = r.listItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Recalculate()
	return c, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, cartID, productID, variantID string) (*CartItem, error) {
	item, err := r.scanItem(r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, variant_id, product_name, variant_name, sku,
		       quantity, unit_price, line_total, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND variant_id = $3`,
		cartID, productID, variantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return item, err
}

func (r *postgresRepo) GetItemByID(ctx context.Context, cartID, itemID string) (*CartItem, error) {
	return r.scanItem(r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, variant_id, product_name, variant_name, sku,
		       quantity, unit_price, line_total, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND id = $2`, cartID, itemID))
}

func (r *postgresRepo) InsertItem(ctx context.Context, item *CartItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items
		  (id, cart_id, product_id, variant_id, product_name, variant_name, sku,
		   quantity, unit_price, line_total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		item.ID, item.CartID, item.ProductID, item.VariantID,
		item.ProductName, item.VariantName, item.SKU,
		item.Quantity, item.UnitPrice, item.LineTotal)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateItem(ctx context.Context, item *CartItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, unit_price = $2, line_total = $3, updated_at = $4
		WHERE id = $5`,
		item.Quantity, item.UnitPrice, item.LineTotal, time.Now(), item.ID)
	return err
}

func (r *postgresRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	return err
}

func (r *postgresRepo) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) listItems(ctx context.Context, cartID uuid.UUID) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cart_id, product_id, variant_id, product_name, variant_name, sku,
		       quantity, unit_price, line_total, created_at, updated_at
		FROM cart_items WHERE cart_id = $1 ORDER BY created_at ASC`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item := &CartItem{}
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID,
			&item.ProductName, &item.VariantName, &item.SKU,
			&item.Quantity, &item.UnitPrice, &item.LineTotal,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) scanItem(row *sql.Row) (*CartItem, error) {
	item := &CartItem{}
	err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID,
		&item.ProductName, &item.VariantName, &item.SKU,
		&item.Quantity, &item.UnitPrice, &item.LineTotal,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

package order

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `id, cliente, itens, subtotal, frete, desconto, total, status, tracking_code, created_at`

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	clienteJSON, err := json.Marshal(ord.Customer)
	if err != nil {
		return Order{}, err
	}
	itensJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.Exec(`INSERT INTO orders (id, cliente, itens, subtotal, frete, desconto, total, status, tracking_code, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		ord.ID, clienteJSON, itensJSON, ord.Subtotal, ord.Frete, ord.Desconto, ord.Total, ord.Status, nullIfEmpty(ord.TrackingCode), ord.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Order{}, ErrDuplicateID
		}
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *PostgresRepository) FindByReferenceSuffix(suffix string) (Order, error) {
	// literal suffix comparison: LIKE would let % and _ typed on the
	// tracking page act as wildcards.
	// created_at is RFC3339 text, so lexical DESC is chronological DESC
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders
        WHERE right(lower(id), length($1)) = lower($1)
        ORDER BY created_at DESC
        LIMIT 1`, suffix)
	return scanOrder(row)
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id, status string, trackingCode *string) (Order, error) {
	row := r.db.QueryRow(`UPDATE orders
        SET status = $2, tracking_code = COALESCE($3, tracking_code)
        WHERE id = $1
        RETURNING `+orderColumns, id, status, trackingCode)
	return scanOrder(row)
}

func (r *PostgresRepository) TransitionStatus(id, from, to string) (bool, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}

	// distinguish "already transitioned" from "no such order"
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var clienteJSON, itensJSON []byte
	var tracking sql.NullString

	err := row.Scan(&ord.ID, &clienteJSON, &itensJSON, &ord.Subtotal, &ord.Frete, &ord.Desconto, &ord.Total, &ord.Status, &tracking, &ord.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	json.Unmarshal(clienteJSON, &ord.Customer)
	json.Unmarshal(itensJSON, &ord.Items)
	if tracking.Valid {
		ord.TrackingCode = tracking.String
	}
	return ord, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

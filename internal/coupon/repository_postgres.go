package coupon

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(`SELECT id, code, discount_amount, free_shipping FROM coupon ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := make([]Coupon, 0)
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountAmount, &c.FreeShipping); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	var c Coupon
	err := r.db.QueryRow(`SELECT id, code, discount_amount, free_shipping FROM coupon WHERE code = $1`, code).
		Scan(&c.ID, &c.Code, &c.DiscountAmount, &c.FreeShipping)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Coupon) (Coupon, error) {
	c.Code = strings.ToLower(c.Code)
	err := r.db.QueryRow(`INSERT INTO coupon (code, discount_amount, free_shipping) VALUES ($1,$2,$3) RETURNING id`,
		c.Code, c.DiscountAmount, c.FreeShipping).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Coupon) (Coupon, error) {
	c.Code = strings.ToLower(c.Code)
	err := r.db.QueryRow(`UPDATE coupon SET code=$2, discount_amount=$3, free_shipping=$4 WHERE id=$1
        RETURNING id, code, discount_amount, free_shipping`,
		id, c.Code, c.DiscountAmount, c.FreeShipping).
		Scan(&c.ID, &c.Code, &c.DiscountAmount, &c.FreeShipping)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM coupon WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, nome, email, password, is_admin, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Nome, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT id, nome, email, password, is_admin, created_at FROM users WHERE lower(email) = lower($1)`, email).
		Scan(&u.ID, &u.Nome, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(`INSERT INTO users (nome, email, password, is_admin, created_at)
        VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		u.Nome, u.Email, u.Password, u.IsAdmin, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

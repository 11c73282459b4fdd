package product

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, nome, descricao, material, preco, categoria_id, tamanhos, cores, imagens, created_at, updated_at`

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM product ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM product WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	tamanhos, cores, imagens, err := marshalLists(p)
	if err != nil {
		return Product{}, err
	}

	err = r.db.QueryRow(`INSERT INTO product (nome, descricao, material, preco, categoria_id, tamanhos, cores, imagens, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`,
		p.Nome, p.Descricao, p.Material, p.Preco, p.CategoriaID, tamanhos, cores, imagens, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	tamanhos, cores, imagens, err := marshalLists(p)
	if err != nil {
		return Product{}, err
	}

	row := r.db.QueryRow(`UPDATE product
        SET nome=$2, descricao=$3, material=$4, preco=$5, categoria_id=$6, tamanhos=$7, cores=$8, imagens=$9, updated_at=$10
        WHERE id=$1
        RETURNING `+productColumns,
		id, p.Nome, p.Descricao, p.Material, p.Preco, p.CategoriaID, tamanhos, cores, imagens, p.UpdatedAt)
	return scanProduct(row)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(`DELETE FROM product WHERE id = $1`, id)
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

func (r *PostgresRepository) AddImage(id int, path string) (Product, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return Product{}, err
	}

	row := r.db.QueryRow(`UPDATE product
        SET imagens = COALESCE(imagens, '[]'::jsonb) || $2::jsonb
        WHERE id = $1
        RETURNING `+productColumns, id, pathJSON)
	return scanProduct(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var descricao, material, createdAt, updatedAt sql.NullString
	var tamanhos, cores, imagens []byte

	err := row.Scan(&p.ID, &p.Nome, &descricao, &material, &p.Preco, &p.CategoriaID, &tamanhos, &cores, &imagens, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}

	p.Descricao = descricao.String
	p.Material = material.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	json.Unmarshal(tamanhos, &p.Tamanhos)
	json.Unmarshal(cores, &p.Cores)
	json.Unmarshal(imagens, &p.Imagens)
	return p, nil
}

func marshalLists(p Product) (tamanhos, cores, imagens []byte, err error) {
	if tamanhos, err = json.Marshal(orEmpty(p.Tamanhos)); err != nil {
		return
	}
	if cores, err = json.Marshal(orEmpty(p.Cores)); err != nil {
		return
	}
	imagens, err = json.Marshal(orEmpty(p.Imagens))
	return
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

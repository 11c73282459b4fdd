package product

// Product is a catalog item. Sizes, colors and the image gallery are stored
// as jsonb arrays; image entries are paths under /uploads.
type Product struct {
	ID          int      `json:"id"`
	Nome        string   `json:"nome"`
	Descricao   string   `json:"descricao,omitempty"`
	Material    string   `json:"material,omitempty"`
	Preco       float64  `json:"preco"`
	CategoriaID *int     `json:"categoriaId,omitempty"`
	Tamanhos    []string `json:"tamanhos,omitempty"`
	Cores       []string `json:"cores,omitempty"`
	Imagens     []string `json:"imagens,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

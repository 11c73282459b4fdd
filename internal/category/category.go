package category

// Category groups products on the storefront.
type Category struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

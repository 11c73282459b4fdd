package coupon

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

// Validate resolves a code typed by the customer, ignoring case and
// surrounding whitespace.
func (s *Service) Validate(code string) (Coupon, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return Coupon{}, ErrNotFound
	}
	return s.repo.GetByCode(normalized)
}

func (s *Service) Create(c Coupon) (Coupon, error) {
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Coupon) (Coupon, error) {
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

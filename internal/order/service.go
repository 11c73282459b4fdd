package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

// Notifier is the slice of the mail layer the order service needs.
type Notifier interface {
	OrderShipped(ord Order)
}

// Service provides business logic for the order lifecycle outside checkout:
// admin listing, status updates and the public tracking lookup.
type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

// PublicLookup resolves a reference typed on the tracking page: exact id
// first, then a case-insensitive suffix match for shortened references.
func (s *Service) PublicLookup(ref string) (Order, error) {
	ord, err := s.repo.GetByID(ref)
	if err == nil {
		return ord, nil
	}
	if err != ErrNotFound {
		return Order{}, err
	}
	return s.repo.FindByReferenceSuffix(ref)
}

// UpdateStatus applies an admin-driven status change. The tracking code is
// only written on the shipped transition; updates to any other status leave
// an existing code untouched. Shipping triggers the shipment notification.
func (s *Service) UpdateStatus(id, status string, trackingCode string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	var code *string
	if status == StatusShipped && trackingCode != "" {
		code = &trackingCode
	}

	ord, err := s.repo.UpdateStatus(id, status, code)
	if err != nil {
		return Order{}, err
	}

	if status == StatusShipped && s.notifier != nil {
		s.notifier.OrderShipped(ord)
	}
	return ord, nil
}

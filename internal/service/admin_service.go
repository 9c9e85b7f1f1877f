package service

import (
	"go-shop-api/internal/apperr"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
)

// AdminMetrics is the back-office overview aggregate.
type AdminMetrics struct {
	Products int64   `json:"products"`
	Users    int64   `json:"users"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type AdminService interface {
	Metrics() (*AdminMetrics, error)
	ListOrders() ([]model.AdminOrderRow, error)
	ListUsers() ([]model.UserResponse, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type adminService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
}

func NewAdminService(productRepo repository.ProductRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository) AdminService {
	return &adminService{
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}
}

func (s *adminService) Metrics() (*AdminMetrics, error) {
	products, err := s.productRepo.Count()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load metrics")
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load metrics")
	}
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load metrics")
	}
	revenue, err := s.orderRepo.Revenue()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load metrics")
	}

	return &AdminMetrics{
		Products: products,
		Users:    users,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}

func (s *adminService) ListOrders() ([]model.AdminOrderRow, error) {
	rows, err := s.orderRepo.ListWithUserEmail()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load orders")
	}
	return rows, nil
}

func (s *adminService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.ListRecent(200)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "Failed to load users")
	}
	out := make([]model.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

// UpdateOrderStatus overwrites the status field unconditionally. There is
// no transition guard: any of the five statuses may follow any other.
func (s *adminService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	if !model.ValidOrderStatus(status) {
		return apperr.New(apperr.Validation, "Invalid status")
	}

	rows, err := s.orderRepo.UpdateStatus(orderID, status)
	if err != nil {
		return apperr.Wrap(err, apperr.Internal, "Failed to update status")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "Order not found")
	}
	return nil
}

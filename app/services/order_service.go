package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/pkg/apperr"
	"github.com/shashiranjanraj/eduportal/pkg/event"
	"github.com/shashiranjanraj/eduportal/pkg/metrics"
)

// OrderInput is the POST /saveOrder body. Any paymentStatus sent by the
// client is ignored.
type OrderInput struct {
	Username      string         `json:"username" validate:"required"`
	CourseName    string         `json:"courseName" validate:"required"`
	CourseFee     *models.Amount `json:"courseFee" validate:"required"`
	PaymentMethod string         `json:"paymentMethod" validate:"required"`
	Country       string         `json:"country" validate:"required"`
}

// OrderPaid is the payload of event.OrderPaid.
type OrderPaid struct {
	OrderID string
}

// PaymentMarked is the payload of event.PaymentMarked.
type PaymentMarked struct {
	UserID string
}

// OrderService runs the enrollment workflow: an order is created unpaid and
// moves to paid exactly once.
type OrderService struct {
	orders repositories.OrderRepository
	users  repositories.UserRepository
	events *event.Dispatcher
}

func NewOrderService(orders repositories.OrderRepository, users repositories.UserRepository, events *event.Dispatcher) *OrderService {
	return &OrderService{orders: orders, users: users, events: events}
}

func (s *OrderService) Save(ctx context.Context, in OrderInput) (models.Order, error) {
	order := models.Order{
		Username:      in.Username,
		CourseName:    in.CourseName,
		CourseFee:     *in.CourseFee,
		PaymentMethod: in.PaymentMethod,
		Country:       in.Country,
		PaymentStatus: false,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersTotal.WithLabelValues("unpaid").Inc()
	return order, nil
}

func (s *OrderService) Pending(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListByPaymentStatus(ctx, false)
}

// Approved lists paid orders, each carrying the full name of the user it
// belongs to when that user exists.
func (s *OrderService) Approved(ctx context.Context) ([]models.ApprovedOrder, error) {
	orders, err := s.orders.ListByPaymentStatus(ctx, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(orders))
	names := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.Username]; !ok {
			seen[o.Username] = struct{}{}
			names = append(names, o.Username)
		}
	}

	users, err := s.users.FindByUsernames(ctx, names)
	if err != nil {
		return nil, err
	}
	fullnames := make(map[string]string, len(users))
	for _, u := range users {
		fullnames[u.Username] = u.Fullname
	}

	out := make([]models.ApprovedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, models.ApprovedOrder{Order: o, Fullname: fullnames[o.Username]})
	}
	return out, nil
}

// MarkPaid moves the order id to paid.
func (s *OrderService) MarkPaid(ctx context.Context, id string) error {
	err := s.orders.MarkPaid(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	metrics.OrdersTotal.WithLabelValues("paid").Inc()
	s.events.Fire(ctx, event.OrderPaid, OrderPaid{OrderID: id})
	return nil
}

// MarkStudentPayment records a payment on the user account id, not on an
// order.
func (s *OrderService) MarkStudentPayment(ctx context.Context, id string) error {
	err := s.users.MarkPaymentStatus(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.ErrStudentNotFound
	}
	if err != nil {
		return err
	}

	s.events.Fire(ctx, event.PaymentMarked, PaymentMarked{UserID: id})
	return nil
}

// StudentCourses lists the paid orders of an approved student. Orders of an
// unknown or unapproved username are never returned.
func (s *OrderService) StudentCourses(ctx context.Context, username string) ([]models.Order, error) {
	_, err := s.users.FindApprovedStudent(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.ErrStudentNotApproved
	}
	if err != nil {
		return nil, err
	}
	return s.orders.ListPaidByUsername(ctx, username)
}

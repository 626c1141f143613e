package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/eduportal/app/models"
)

// NewMemoryStore returns an in-process Store. Not durable across restarts.
// Usernames are unique, as with the mongo index.
func NewMemoryStore() *Store {
	return &Store{
		Users:   &memoryUsers{},
		Courses: &memoryCourses{},
		Orders:  &memoryOrders{},
	}
}

// Records are kept in insertion order to match natural order listings.

type memoryUsers struct {
	mu    sync.RWMutex
	users []models.User
}

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return r.first(func(u models.User) bool { return u.ID == oid })
}

func (r *memoryUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	return r.first(func(u models.User) bool { return u.Username == username })
}

func (r *memoryUsers) FindByUsernames(_ context.Context, usernames []string) ([]models.User, error) {
	want := make(map[string]struct{}, len(usernames))
	for _, name := range usernames {
		want[name] = struct{}{}
	}
	return r.filter(func(u models.User) bool {
		_, ok := want[u.Username]
		return ok
	}), nil
}

func (r *memoryUsers) PendingStudents(_ context.Context) ([]models.PendingStudent, error) {
	out := []models.PendingStudent{}
	for _, u := range r.filter(func(u models.User) bool { return u.Role == models.RoleStudent && !u.Approved }) {
		out = append(out, models.PendingStudent{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

func (r *memoryUsers) ApprovedStudents(_ context.Context) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return u.Role == models.RoleStudent && u.Approved }), nil
}

func (r *memoryUsers) FindApprovedStudent(_ context.Context, username string) (models.User, error) {
	return r.first(func(u models.User) bool {
		return u.Username == username && u.Role == models.RoleStudent && u.Approved
	})
}

func (r *memoryUsers) ApproveStudent(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Username == username && r.users[i].Role == models.RoleStudent {
			r.users[i].Approved = true
			return r.users[i], nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *memoryUsers) MarkPaymentStatus(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == oid {
			paid := true
			r.users[i].PaymentStatus = &paid
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUsers) first(match func(models.User) bool) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *memoryUsers) filter(match func(models.User) bool) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, u := range r.users {
		if match(u) {
			out = append(out, u)
		}
	}
	return out
}

type memoryCourses struct {
	mu      sync.RWMutex
	courses []models.Course
}

func (r *memoryCourses) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	r.courses = append(r.courses, *course)
	return nil
}

func (r *memoryCourses) All(_ context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Course{}, r.courses...), nil
}

func (r *memoryCourses) FindByID(_ context.Context, id string) (models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Course{}, ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.courses {
		if c.ID == oid {
			return c, nil
		}
	}
	return models.Course{}, ErrNotFound
}

type memoryOrders struct {
	mu     sync.RWMutex
	orders []models.Order
}

func (r *memoryOrders) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memoryOrders) ListByPaymentStatus(_ context.Context, paid bool) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.PaymentStatus == paid }), nil
}

func (r *memoryOrders) ListPaidByUsername(_ context.Context, username string) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.Username == username && o.PaymentStatus }), nil
}

func (r *memoryOrders) MarkPaid(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == oid {
			r.orders[i].PaymentStatus = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryOrders) filter(match func(models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Order{}
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Package repositories is the storage boundary. Services depend on the
// interfaces below; the mongo driver backs production and the memory driver
// backs tests and DB_DRIVER=memory.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/eduportal/app/models"
)

var (
	// ErrNotFound covers a missing document and an id that is not a valid
	// ObjectID.
	ErrNotFound = errors.New("repositories: not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// UserRepository handles persistence for User.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error)

	// PendingStudents lists students awaiting approval, projected to id and username.
	PendingStudents(ctx context.Context) ([]models.PendingStudent, error)
	ApprovedStudents(ctx context.Context) ([]models.User, error)
	FindApprovedStudent(ctx context.Context, username string) (models.User, error)

	// ApproveStudent flips approved on the student with username and returns
	// the updated record.
	ApproveStudent(ctx context.Context, username string) (models.User, error)
	MarkPaymentStatus(ctx context.Context, id string) error
}

// CourseRepository handles persistence for Course.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	All(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (models.Course, error)
}

// OrderRepository handles persistence for Order.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByPaymentStatus(ctx context.Context, paid bool) ([]models.Order, error)
	ListPaidByUsername(ctx context.Context, username string) ([]models.Order, error)
	MarkPaid(ctx context.Context, id string) error
}

// Store groups the three repositories behind one driver.
type Store struct {
	Users   UserRepository
	Courses CourseRepository
	Orders  OrderRepository
}

// Drivers accepted by DB_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Open builds the Store for driver. db is only used by the mongo driver and
// timeout bounds each of its operations.
func Open(driver string, db *mongo.Database, timeout time.Duration) (*Store, error) {
	switch driver {
	case DriverMongo:
		if db == nil {
			return nil, errors.New("repositories: mongo driver needs a connected database")
		}
		return NewMongoStore(db, timeout), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: %s, %s)", driver, DriverMongo, DriverMemory)
	}
}

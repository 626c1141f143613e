package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/pkg/event"
)

// StudentService covers the admin side of student accounts.
type StudentService struct {
	users  repositories.UserRepository
	events *event.Dispatcher
}

func NewStudentService(users repositories.UserRepository, events *event.Dispatcher) *StudentService {
	return &StudentService{users: users, events: events}
}

func (s *StudentService) Pending(ctx context.Context) ([]models.PendingStudent, error) {
	return s.users.PendingStudents(ctx)
}

func (s *StudentService) Enrolled(ctx context.Context) ([]models.User, error) {
	return s.users.ApprovedStudents(ctx)
}

// Approve marks the student username as approved. It returns nil, nil when no
// student has that username; approving is not an error either way.
func (s *StudentService) Approve(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.ApproveStudent(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.events.Fire(ctx, event.StudentApproved, user)
	return &user, nil
}

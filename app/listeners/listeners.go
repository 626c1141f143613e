// Package listeners subscribes the application's reactions to domain events.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/pkg/cache"
	"github.com/shashiranjanraj/eduportal/pkg/event"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
)

// Register wires the audit log and catalog cache invalidation into d.
func Register(d *event.Dispatcher, c *cache.Cache) {
	d.Listen(event.CourseAdded, ForgetStaleCatalog(c))

	for _, name := range []string{event.CourseAdded, event.StudentApproved, event.OrderPaid, event.PaymentMarked} {
		d.Listen(name, Audit(name))
	}
}

// ForgetStaleCatalog frees the course list cached under the generation that
// Add just superseded. Entries it misses expire with the cache TTL.
func ForgetStaleCatalog(c *cache.Cache) event.Handler {
	return func(ctx context.Context, _ interface{}) {
		gen, err := c.Counter(ctx, services.CatalogGenKey)
		if err != nil || gen == 0 {
			return
		}
		if err := c.Forget(ctx, services.CatalogKey(gen-1)); err != nil {
			logger.WithCtx(ctx).Warn("stale catalog not cleared", "error", err.Error())
		}
	}
}

// Audit logs one line per event with the identifying fields of its payload.
func Audit(name string) event.Handler {
	return func(ctx context.Context, payload interface{}) {
		args := []any{"event", name}

		switch p := payload.(type) {
		case models.Course:
			args = append(args, "course_id", p.ID.Hex(), "course_name", p.CourseName)
		case models.User:
			args = append(args, "user_id", p.ID.Hex(), "username", p.Username)
		case services.OrderPaid:
			args = append(args, "order_id", p.OrderID)
		case services.PaymentMarked:
			args = append(args, "user_id", p.UserID)
		}

		logger.WithCtx(ctx).Info("audit", args...)
	}
}

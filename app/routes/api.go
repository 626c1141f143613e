package routes

import (
	"github.com/shashiranjanraj/eduportal/app/controllers"
	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
	"github.com/shashiranjanraj/eduportal/pkg/middleware"
	"github.com/shashiranjanraj/eduportal/pkg/router"
)

// Controllers is everything the route table dispatches to.
type Controllers struct {
	Auth   *controllers.AuthController
	Admin  *controllers.AdminController
	Course *controllers.CourseController
	Order  *controllers.OrderController
}

// Options tunes the route table.
type Options struct {
	// AdminGuard requires an admin session token on the admin screens and
	// on order state changes. Tokens must be set when it is on.
	AdminGuard bool
	Tokens     middleware.TokenValidator
}

func RegisterAPI(r *router.Router, c Controllers, opts Options) {
	var guard []router.Middleware
	if opts.AdminGuard {
		guard = append(guard, middleware.RequireRole(opts.Tokens, models.RoleAdmin))
	}

	r.Post("/signup", "auth.signup", ctx.Wrap(c.Auth.Signup))
	r.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	r.Post("/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))

	admin := r.Group("/admin")
	admin.Post("/login", "admin.login", ctx.Wrap(c.Auth.AdminLogin))

	guarded := admin.Group("", guard...)
	guarded.Get("/pending-students", "admin.students.pending", ctx.Wrap(c.Admin.PendingStudents))
	guarded.Post("/approve-student/{username}", "admin.students.approve", ctx.Wrap(c.Admin.ApproveStudent))
	guarded.Get("/enrolled-students/{username}", "admin.students.enrolled", ctx.Wrap(c.Admin.EnrolledStudents))
	guarded.Post("/update-payment/{id}", "admin.students.payment", ctx.Wrap(c.Order.UpdatePayment))

	r.Post("/add-course", "courses.store", ctx.Wrap(c.Course.Store))
	r.Get("/get-courses", "courses.index", ctx.Wrap(c.Course.Index))
	r.Get("/get-course/{id}", "courses.show", ctx.Wrap(c.Course.Show))

	r.Post("/saveOrder", "orders.store", ctx.Wrap(c.Order.Store))
	r.Get("/get-pending-enrollments", "orders.pending", ctx.Wrap(c.Order.Pending))
	r.Get("/get-approved-enrollments", "orders.approved", ctx.Wrap(c.Order.Approved))
	r.Post("/update-enrollment-status/{id}", "orders.paid", ctx.Wrap(c.Order.UpdateEnrollmentStatus), guard...)

	r.Get("/student/my-courses/{username}", "students.courses", ctx.Wrap(c.Order.MyCourses))
}

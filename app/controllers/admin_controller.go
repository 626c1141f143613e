package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
)

// AdminController serves the student approval screens.
type AdminController struct {
	students *services.StudentService
}

func NewAdminController(students *services.StudentService) *AdminController {
	return &AdminController{students: students}
}

type approveResponse struct {
	Message  string `json:"message"`
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
}

func (c *AdminController) PendingStudents(cx *ctx.Context) {
	students, err := c.students.Pending(cx.Context())
	if err != nil {
		cx.Fail(err, "Error fetching pending students")
		return
	}
	cx.OK(students)
}

// ApproveStudent answers 200 even when no student matched; the body then
// carries only the message.
func (c *AdminController) ApproveStudent(cx *ctx.Context) {
	user, err := c.students.Approve(cx.Context(), cx.Param("username"))
	if err != nil {
		cx.Fail(err, "Error approving student")
		return
	}

	res := approveResponse{Message: "Student approved successfully"}
	if user != nil {
		res.Role = user.Role
		res.Username = user.Username
	}
	cx.JSON(http.StatusOK, res)
}

// EnrolledStudents lists every approved student. The {username} segment is
// accepted but not used.
func (c *AdminController) EnrolledStudents(cx *ctx.Context) {
	users, err := c.students.Enrolled(cx.Context())
	if err != nil {
		cx.Fail(err, "Error fetching users")
		return
	}
	cx.OK(users)
}

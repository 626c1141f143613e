package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Store(cx *ctx.Context) {
	var in services.OrderInput
	if !cx.BindJSON(&in) {
		return
	}

	if _, err := c.orders.Save(cx.Context(), in); err != nil {
		cx.Fail(err, "Error adding order")
		return
	}
	cx.Message(http.StatusOK, "Order added successfully")
}

func (c *OrderController) Pending(cx *ctx.Context) {
	orders, err := c.orders.Pending(cx.Context())
	if err != nil {
		cx.Fail(err, "Error fetching pending enrollments")
		return
	}
	cx.OK(orders)
}

func (c *OrderController) Approved(cx *ctx.Context) {
	orders, err := c.orders.Approved(cx.Context())
	if err != nil {
		cx.Fail(err, "Error fetching approved enrollments")
		return
	}
	cx.OK(orders)
}

func (c *OrderController) UpdateEnrollmentStatus(cx *ctx.Context) {
	if err := c.orders.MarkPaid(cx.Context(), cx.Param("id")); err != nil {
		cx.Fail(err, "Error updating enrollment status")
		return
	}
	cx.Message(http.StatusOK, "Enrollment status updated successfully")
}

func (c *OrderController) UpdatePayment(cx *ctx.Context) {
	if err := c.orders.MarkStudentPayment(cx.Context(), cx.Param("id")); err != nil {
		cx.Fail(err, "Error updating payment status")
		return
	}
	cx.Message(http.StatusOK, "Payment status updated successfully")
}

func (c *OrderController) MyCourses(cx *ctx.Context) {
	orders, err := c.orders.StudentCourses(cx.Context(), cx.Param("username"))
	if err != nil {
		cx.Fail(err, "Error fetching student's courses")
		return
	}
	cx.OK(orders)
}

package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
)

type CourseController struct {
	courses *services.CourseService
}

func NewCourseController(courses *services.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

func (c *CourseController) Store(cx *ctx.Context) {
	var in services.CourseInput
	if !cx.BindJSON(&in) {
		return
	}

	if _, err := c.courses.Add(cx.Context(), in); err != nil {
		cx.Fail(err, "Error adding course")
		return
	}
	cx.Message(http.StatusOK, "Course added successfully")
}

func (c *CourseController) Index(cx *ctx.Context) {
	courses, err := c.courses.All(cx.Context())
	if err != nil {
		cx.Fail(err, "Error fetching courses")
		return
	}
	cx.OK(courses)
}

func (c *CourseController) Show(cx *ctx.Context) {
	course, err := c.courses.Get(cx.Context(), cx.Param("id"))
	if err != nil {
		cx.Fail(err, "Error fetching course details")
		return
	}
	cx.OK(course)
}

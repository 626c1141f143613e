package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/eduportal/app/models"
)

type mongoCourses struct {
	coll coll
}

func (r *mongoCourses) Create(ctx context.Context, course *models.Course) error {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	return r.coll.insert(ctx, course)
}

func (r *mongoCourses) All(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	err := r.coll.find(ctx, bson.M{}, &courses)
	return courses, err
}

func (r *mongoCourses) FindByID(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	filter, err := byHexID(id)
	if err != nil {
		return course, err
	}
	err = r.coll.findOne(ctx, filter, &course)
	return course, err
}

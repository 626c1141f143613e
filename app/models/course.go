package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course is a catalog entry. All fields are free text and required.
type Course struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseName    string             `bson:"courseName" json:"courseName"`
	Description   string             `bson:"description" json:"description"`
	Duration      string             `bson:"duration" json:"duration"`
	StartDate     string             `bson:"startDate" json:"startDate"`
	Objectives    string             `bson:"objectives" json:"objectives"`
	CourseContent string             `bson:"courseContent" json:"courseContent"`
	Requirements  string             `bson:"requirements" json:"requirements"`
	CourseFee     string             `bson:"courseFee" json:"courseFee"`
}

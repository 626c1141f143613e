package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles accepted at signup.
const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
)

// ValidRole reports whether role is one of the three account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// User is an account in the users collection.
//
// PasswordConfirmation is part of the stored schema but signup never writes
// it. PaymentStatus is only ever set by the admin update-payment route.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Fullname             string             `bson:"fullname" json:"fullname"`
	Username             string             `bson:"username" json:"username"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	PasswordConfirmation string             `bson:"passwordConfirmation,omitempty" json:"-"`
	Role                 string             `bson:"role" json:"role"`
	Approved             bool               `bson:"approved" json:"approved"`
	PaymentStatus        *bool              `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
}

// PendingStudent is the projection returned by the pending-students listing.
type PendingStudent struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
}

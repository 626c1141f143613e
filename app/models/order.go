package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is a course enrollment plus its payment state. Username refers to
// User.Username by value only.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username      string             `bson:"username" json:"username"`
	CourseName    string             `bson:"courseName" json:"courseName"`
	CourseFee     Amount             `bson:"courseFee" json:"courseFee"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Country       string             `bson:"country" json:"country"`
	PaymentStatus bool               `bson:"paymentStatus" json:"paymentStatus"`
}

// ApprovedOrder is a paid order with the student's full name joined in.
type ApprovedOrder struct {
	Order    `bson:",inline"`
	Fullname string `bson:"-" json:"fullname,omitempty"`
}

// Amount is a course fee. It decodes from a JSON number or a numeric string
// ("250", "250.50"), since checkout forms post either.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("amount: null")
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("amount: %q is not a number", s)
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

package models

import (
	"encoding/json"
	"errors"
)

// JSON keys of the user fields that can be changed after signup.
const (
	UserFieldName     = "name"
	UserFieldLocation = "location"
	UserFieldAge      = "age"
)

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Age          int    `json:"age"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don't expose hash
}

// UserPatchers is the allow-list used by PATCH /users/:id.
// Email and password are not patchable.
var UserPatchers = Patchers[User]{
	UserFieldName: func(u *User, raw json.RawMessage) error {
		return decodeText(raw, &u.Name)
	},
	UserFieldAge: func(u *User, raw json.RawMessage) error {
		var age int
		if err := decodeField(raw, &age); err != nil {
			return err
		}
		if age < 0 {
			return errors.New("must be greater than or equal to 0")
		}
		u.Age = age
		return nil
	},
	UserFieldLocation: func(u *User, raw json.RawMessage) error {
		return decodeText(raw, &u.Location)
	},
}

package models

import (
	"strings"
	"time"
)

// Address is denormalized onto the user; duplicates are detected by exact
// string equality on the composed form.
type Address struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// Composed joins the address fields into the canonical dedup key.
func (a Address) Composed() string {
	return strings.Join([]string{a.Name, a.Phone, a.Address, a.City, a.State, a.Pincode}, ", ")
}

// User is keyed by phone number: the document id IS the phone number, so
// the auth subject maps 1:1 onto stored orders and addresses.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Phone     string    `bson:"phone" json:"phone"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Addresses []Address `bson:"addresses" json:"addresses"`
	OrderIDs  []string  `bson:"orderIds" json:"orderIds"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileComplete reports whether the profile gates protected flows.
func (u *User) ProfileComplete() bool {
	return u.Name != "" && u.Email != ""
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteItem is a display snapshot of a liked product, captured from the
// catalog at the moment it was added so the list renders without a fan-out
// of catalog calls.
type FavoriteItem struct {
	ProductID    string  `bson:"productId" json:"productId"`
	Name         string  `bson:"name" json:"name"`
	Brand        string  `bson:"brand,omitempty" json:"brand,omitempty"`
	ImageURL     string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Price        float64 `bson:"price" json:"price"`
	CurrentPrice float64 `bson:"currentPrice" json:"currentPrice"`
}

// User is the gateway-side profile document for an authenticated user.
// Identity originates in the external auth service; UserID is its string
// identifier, not a Mongo id.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses []Address          `bson:"addresses" json:"addresses"`
	Favorites []FavoriteItem     `bson:"favorites" json:"favorites"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultAddress returns the address flagged default, falling back to the
// first one, mirroring how checkout pre-selects a destination.
func (u User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	if len(u.Addresses) > 0 {
		return &u.Addresses[0]
	}
	return nil
}

// AddressByID looks up an address by its composite id.
func (u User) AddressByID(addressID string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].AddressID == addressID {
			return &u.Addresses[i]
		}
	}
	return nil
}

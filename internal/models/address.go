package models

// Address is one delivery destination in the user's address book. The
// AddressID is composite "code-suffix": the segment before the first dash is
// the locational routing code used for shipping-rate requests.
type Address struct {
	AddressID    string `bson:"addressId" json:"addressId"`
	Name         string `bson:"name" json:"name" binding:"required"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber" binding:"required"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1" binding:"required"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city" binding:"required"`
	State        string `bson:"state" json:"state" binding:"required"`
	PostalCode   string `bson:"postalCode" json:"postalCode" binding:"required"`
	Country      string `bson:"country" json:"country" binding:"required"`
	AddressType  string `bson:"addressType" json:"addressType" binding:"omitempty,oneof=HOME WORK OTHER"`
	IsDefault    bool   `bson:"isDefault" json:"isDefault"`
}

// RoutingCode returns the leading segment of the composite address id, the
// only part that carries routing meaning for carrier-rate lookups.
func (a Address) RoutingCode() string {
	return RoutingCodeOf(a.AddressID)
}

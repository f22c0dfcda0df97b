package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jubili-gateway/internal/models"
)

type addressRequest struct {
	Name         string `json:"name" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postalCode" binding:"required"`
	Country      string `json:"country" binding:"required"`
	AddressType  string `json:"addressType" binding:"omitempty,oneof=HOME WORK OTHER"`
	IsDefault    bool   `json:"isDefault"`
}

func findUser(ctx context.Context, db *mongo.Database, userID string) (*models.User, error) {
	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func saveAddresses(ctx context.Context, db *mongo.Database, userID string, addresses []models.Address) error {
	now := time.Now()
	_, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"addresses": addresses, "updatedAt": now},
			"$setOnInsert": bson.M{"userId": userID, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// newAddressID mints a composite "code-suffix" id whose prefix is the
// postal code, the segment shipping-rate requests route on.
func newAddressID(postalCode string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return postalCode + "-" + suffix
}

func addressFromRequest(req addressRequest, addressID string) models.Address {
	addressType := strings.TrimSpace(req.AddressType)
	if addressType == "" {
		addressType = "HOME"
	}
	return models.Address{
		AddressID:    addressID,
		Name:         strings.TrimSpace(req.Name),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		AddressLine2: strings.TrimSpace(req.AddressLine2),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Country:      strings.TrimSpace(req.Country),
		AddressType:  addressType,
		IsDefault:    req.IsDefault,
	}
}

func GetUserAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "ADDRESS")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := findUser(ctx, db, id.UserID)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"addresses": []models.Address{}})
			return
		}
		if err != nil {
			log.Println("[ADDRESS] [ERROR] get addresses failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": user.Addresses})
	}
}

func CreateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "ADDRESS")
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var addresses []models.Address
		if user, err := findUser(ctx, db, id.UserID); err == nil {
			addresses = user.Addresses
		} else if err != mongo.ErrNoDocuments {
			log.Println("[ADDRESS] [ERROR] user lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		// The first address becomes the default implicitly.
		if req.IsDefault || len(addresses) == 0 {
			req.IsDefault = true
			for i := range addresses {
				addresses[i].IsDefault = false
			}
		}

		address := addressFromRequest(req, newAddressID(strings.TrimSpace(req.PostalCode)))
		addresses = append(addresses, address)

		if err := saveAddresses(ctx, db, id.UserID, addresses); err != nil {
			log.Println("[ADDRESS] [ERROR] insert address failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] address created:", address.AddressID)
		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

func UpdateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "ADDRESS")
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[ADDRESS] [ERROR] invalid address body:", err)
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "invalid body")
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "invalid address id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := findUser(ctx, db, id.UserID)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] user not found:", err)
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}

		index := -1
		for i, addr := range user.Addresses {
			if addr.AddressID == addressID {
				index = i
				break
			}
		}
		if index == -1 {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}

		if req.IsDefault {
			for i := range user.Addresses {
				user.Addresses[i].IsDefault = false
			}
		}

		// The id keeps its original routing prefix even if the postal code
		// changed; the prefix is re-minted only on create.
		user.Addresses[index] = addressFromRequest(req, addressID)

		if err := saveAddresses(ctx, db, id.UserID, user.Addresses); err != nil {
			log.Println("[ADDRESS] [ERROR] update address failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] address updated:", addressID)
		c.JSON(http.StatusOK, gin.H{"address": user.Addresses[index]})
	}
}

func DeleteUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "ADDRESS")
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "invalid address id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := findUser(ctx, db, id.UserID)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] user not found:", err)
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}

		updated := make([]models.Address, 0, len(user.Addresses))
		found := false
		removedDefault := false
		for _, addr := range user.Addresses {
			if addr.AddressID == addressID {
				found = true
				removedDefault = addr.IsDefault
				continue
			}
			updated = append(updated, addr)
		}
		if !found {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}
		if removedDefault && len(updated) > 0 {
			updated[0].IsDefault = true
		}

		if err := saveAddresses(ctx, db, id.UserID, updated); err != nil {
			log.Println("[ADDRESS] [ERROR] delete address failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] address deleted:", addressID)
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}

func SetDefaultAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "ADDRESS")
		if !ok {
			return
		}

		addressID := strings.TrimSpace(c.Param("id"))
		if addressID == "" {
			respondWithError(c, http.StatusBadRequest, "ADDRESS", "invalid address id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := findUser(ctx, db, id.UserID)
		if err != nil {
			log.Println("[ADDRESS] [ERROR] user not found:", err)
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}

		found := false
		for i := range user.Addresses {
			isTarget := user.Addresses[i].AddressID == addressID
			user.Addresses[i].IsDefault = isTarget
			if isTarget {
				found = true
			}
		}
		if !found {
			respondWithError(c, http.StatusNotFound, "ADDRESS", "address not found")
			return
		}

		if err := saveAddresses(ctx, db, id.UserID, user.Addresses); err != nil {
			log.Println("[ADDRESS] [ERROR] set default failed:", err)
			respondWithError(c, http.StatusInternalServerError, "ADDRESS", "db error")
			return
		}

		log.Println("[ADDRESS] [INFO] default address set:", addressID)
		c.JSON(http.StatusOK, gin.H{"message": "default address updated"})
	}
}

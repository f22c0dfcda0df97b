package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jubili-gateway/internal/checkout"
	"jubili-gateway/internal/models"
)

type favoriteRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func GetUserFavorites(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "FAVORITE")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := findUser(ctx, db, id.UserID)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"data": []models.FavoriteItem{}})
			return
		}
		if err != nil {
			log.Println("[FAVORITE] [ERROR] get favorites failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "db error")
			return
		}

		favorites := user.Favorites
		if favorites == nil {
			favorites = []models.FavoriteItem{}
		}
		c.JSON(http.StatusOK, gin.H{"data": favorites})
	}
}

// AddUserFavorite snapshots display fields from the catalog so the list
// renders without a catalog fan-out later.
func AddUserFavorite(db *mongo.Database, catalog checkout.CatalogAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "FAVORITE")
		if !ok {
			return
		}

		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Println("[FAVORITE] [ERROR] invalid favorite body:", err)
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		product, err := catalog.GetProduct(ctx, strings.TrimSpace(req.ProductID), id.Token)
		if err != nil {
			log.Println("[FAVORITE] [ERROR] product lookup failed:", err)
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "invalid productId")
			return
		}

		favorite := models.FavoriteItem{
			ProductID:    product.ProductID,
			Name:         product.ProductName,
			Brand:        product.Brand,
			ImageURL:     product.FirstImage(),
			Price:        product.Price,
			CurrentPrice: product.CurrentPrice,
		}

		now := time.Now()
		_, err = db.Collection("users").UpdateOne(ctx,
			bson.M{"userId": id.UserID, "favorites.productId": bson.M{"$ne": favorite.ProductID}},
			bson.M{
				"$push":        bson.M{"favorites": favorite},
				"$set":         bson.M{"updatedAt": now},
				"$setOnInsert": bson.M{"userId": id.UserID, "createdAt": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			log.Println("[FAVORITE] [ERROR] add favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
	}
}

func DeleteUserFavorite(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := requireIdentity(c, "FAVORITE")
		if !ok {
			return
		}

		productID := strings.TrimSpace(c.Param("productId"))
		if productID == "" {
			respondWithError(c, http.StatusBadRequest, "FAVORITE", "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("users").UpdateOne(ctx,
			bson.M{"userId": id.UserID},
			bson.M{
				"$pull": bson.M{"favorites": bson.M{"productId": productID}},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			log.Println("[FAVORITE] [ERROR] remove favorite failed:", err)
			respondWithError(c, http.StatusInternalServerError, "FAVORITE", "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
	}
}

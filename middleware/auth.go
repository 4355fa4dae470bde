package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Verified token hashes stay cached for an hour; revocation deletes the
// entry, so the TTL only bounds how long an idle session skips the DB.
const authCacheTTL = time.Hour

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// cachedAuthSubject checks the auth cache for a previously verified token
// hash. A hit refreshes the TTL. A missing or unreachable cache reads as a
// miss and the caller falls back to the repository.
func cachedAuthSubject(ctx context.Context, key string) (string, bool) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return "", false
	}
	id, err := cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARNING: auth cache read failed, falling back to DB: %v", err)
		}
		return "", false
	}
	_ = cache.Expire(ctx, key, authCacheTTL).Err()
	return id, true
}

func storeAuthSubject(ctx context.Context, key, id string) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, id, authCacheTTL).Err(); err != nil {
		log.Printf("WARNING: auth cache write failed: %v", err)
	}
}

// JWTAuthCustomerMiddleware authenticates a customer token. The token hash
// must match the stored one; verified hashes are cached so repeat requests
// skip the customer lookup.
func JWTAuthCustomerMiddleware(repo customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || (role != "customer" && role != "admin") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + "customer:" + utils.HashToken(tokenString)
		if id, hit := cachedAuthSubject(ctx, cacheKey); hit && id == subject {
			c.Set("customerID", subject)
			c.Set("isAdmin", role == "admin")
			c.Next()
			return
		}

		cust, err := repo.GetByTokenHash(ctx, utils.HashToken(tokenString))
		if err != nil || cust == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or customer not found"})
			return
		}
		storeAuthSubject(ctx, cacheKey, cust.ID)

		c.Set("customerID", cust.ID)
		c.Set("isAdmin", cust.Admin)
		c.Next()
	}
}

// JWTAuthBusinessMiddleware authenticates a business token.
func JWTAuthBusinessMiddleware(repo businessRepo.BusinessRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || role != "business" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + "business:" + utils.HashToken(tokenString)
		if id, hit := cachedAuthSubject(ctx, cacheKey); hit && id == subject {
			c.Set("businessID", subject)
			c.Next()
			return
		}

		biz, err := repo.GetByTokenHash(ctx, utils.HashToken(tokenString))
		if err != nil || biz == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or business not found"})
			return
		}
		storeAuthSubject(ctx, cacheKey, biz.ID)

		c.Set("businessID", biz.ID)
		c.Next()
	}
}

// JWTAuthAdminMiddleware authenticates a customer token carrying the admin
// role. The admin flag is re-checked against the store on every cache miss.
func JWTAuthAdminMiddleware(repo customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + "customer:" + utils.HashToken(tokenString)
		if id, hit := cachedAuthSubject(ctx, cacheKey); hit && id == subject {
			c.Set("customerID", subject)
			c.Set("isAdmin", true)
			c.Next()
			return
		}

		cust, err := repo.GetByTokenHash(ctx, utils.HashToken(tokenString))
		if err != nil || cust == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or customer not found"})
			return
		}
		if !cust.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		storeAuthSubject(ctx, cacheKey, cust.ID)

		c.Set("customerID", cust.ID)
		c.Set("isAdmin", true)
		c.Next()
	}
}

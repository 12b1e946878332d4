package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const contextKeyClaims = "auth_claims"

// Claims carries the authenticated photographer identity. Authorization
// decisions happen here at the edge; the lifecycle itself is identity-free.
type Claims struct {
	PhotographerID string `json:"photographer_id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for a photographer.
func GenerateToken(photographerID uuid.UUID, email, role, secret string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	claims := Claims{
		PhotographerID: photographerID.String(),
		Email:          email,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Middleware validates the Bearer token and stores the claims in the request
// context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// CurrentPhotographerID returns the authenticated photographer id, if any.
func CurrentPhotographerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(contextKeyClaims)
	if !exists {
		return uuid.Nil, false
	}
	claims, ok := value.(*Claims)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.PhotographerID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

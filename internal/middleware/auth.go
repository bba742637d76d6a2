package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingToken  = errors.New("Authorization header is required")
	errHeaderFormat  = errors.New("Invalid authorization header format")
	errTokenExpired  = errors.New("token has expired")
	errInvalidToken  = errors.New("invalid token")
	errInvalidClaims = errors.New("invalid token claims")
)

// Claims are the access token claims. Subject carries the username as well.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Name returns the username, falling back to the subject
func (c *Claims) Name() string {
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}

// Auth rejects requests without a valid HS256 bearer token with 401. The token comes from the
// Authorization header, or from the token query parameter for links opened by a browser.
func Auth(jwtSecret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return []byte(jwtSecret), nil }

	return func(c *gin.Context) {
		raw, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(raw, claims, keyFunc)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			err = errTokenExpired
		case err != nil:
			err = errInvalidToken
		case !token.Valid:
			err = errInvalidClaims
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Name())
		c.Set("claims", claims)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", errHeaderFormat
	}
	return token, nil
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) uint {
	id, _ := c.Value("userID").(uint)
	return id
}

// GetUsername extracts the username from the Gin context
func GetUsername(c *gin.Context) string {
	name, _ := c.Value("username").(string)
	return name
}

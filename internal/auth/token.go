package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CookieName = "token"

var (
	// ErrTokenExpired lets callers tell a stale session apart from a bad
	// token and ask for a re-login instead of rejecting outright.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// IssueToken signs a bearer token carrying only the principal id.
func IssueToken(principalID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   principalID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates the signature and expiry and returns the principal
// id. Expired tokens fail with ErrTokenExpired, everything else with
// ErrTokenInvalid.
func VerifyToken(tokenString, secret string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return primitive.NilObjectID, ErrTokenExpired
		}
		return primitive.NilObjectID, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, ErrTokenInvalid
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrTokenInvalid
	}
	return id, nil
}

// CookiePolicy carries the deployment-dependent cookie attributes. Cross-site
// frontends in production need SameSite=None, which browsers only accept on
// secure cookies; local development keeps Lax over plain http.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

func PolicyFor(production bool) CookiePolicy {
	if production {
		return CookiePolicy{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: http.SameSiteLaxMode}
}

func SetAuthCookie(c *gin.Context, token string, ttl time.Duration, policy CookiePolicy) {
	c.SetSameSite(policy.SameSite)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", policy.Secure, true)
}

func ClearAuthCookie(c *gin.Context, policy CookiePolicy) {
	c.SetSameSite(policy.SameSite)
	c.SetCookie(CookieName, "", -1, "/", "", policy.Secure, true)
}

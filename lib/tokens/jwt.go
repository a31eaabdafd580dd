package tokens

import (
	"net/http"
	"time"

	"github.com/getAlby/royaltyhub.go/lib/responses"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type jwtCustomClaims struct {
	Address string `json:"address"`

	jwt.StandardClaims
}

// Middleware authenticates requests with an access token and stores the token's address as "Address".
func Middleware(secret []byte) echo.MiddlewareFunc {
	config := middleware.DefaultJWTConfig

	config.ContextKey = "token"
	config.SigningKey = secret
	config.Claims = &jwtCustomClaims{}
	config.ErrorHandlerWithContext = func(err error, c echo.Context) error {
		c.Logger().Debug(err)
		return echo.NewHTTPError(http.StatusUnauthorized, responses.BadAuthError)
	}
	config.SuccessHandler = func(c echo.Context) {
		token := c.Get("token").(*jwt.Token)
		claims := token.Claims.(*jwtCustomClaims)
		c.Set("Address", claims.Address)
	}

	return middleware.JWTWithConfig(config)
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, address string) (string, error) {
	claims := &jwtCustomClaims{
		Address: address,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Second * time.Duration(expiryInSeconds)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

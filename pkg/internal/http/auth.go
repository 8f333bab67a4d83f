package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// tokenClaims is the shape of the access token issued by the upstream
// identity service. Subject carries the stable account name; nick and
// avatar are mirrored into the local account table on every request.
type tokenClaims struct {
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

func (v *App) authenticate(c *fiber.Ctx) error {
	tk := c.Query("tk")
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		tk = strings.TrimPrefix(header, "Bearer ")
	}
	if len(tk) == 0 {
		return c.Next()
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tk, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid access token")
	}
	if len(claims.Subject) == 0 {
		return fiber.NewError(fiber.StatusUnauthorized, "access token has no subject")
	}

	account, err := v.srv.EnsureAccount(c.UserContext(), claims.Subject, claims.Nick, claims.Avatar)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Locals("user", account)
	return c.Next()
}

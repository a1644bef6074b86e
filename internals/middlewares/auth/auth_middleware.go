// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"cems_backend/internals/configs"
	"cems_backend/internals/constants"
	helper "cems_backend/internals/helpers"
)

// AuthMiddleware memverifikasi bearer token (HS256) dan menyimpan identitas
// (user_id, userEmail, userRole) ke Locals. Server stateless: tidak ada
// session store / revocation list — logout cukup hapus token di client.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid token.")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secretKey), nil
		}); err != nil {
			// parse error sudah mencakup exp lewat validasi claims default
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		userID, _ := claims["id"].(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		roleStr, _ := claims["role"].(string)
		role, err := constants.ParseRole(roleStr)
		if err != nil {
			// role di luar enum tidak boleh lolos diam-diam
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		email, _ := claims["email"].(string)

		c.Locals("user_id", userID)
		c.Locals("userEmail", email)
		c.Locals("userRole", role.String())
		return c.Next()
	}
}

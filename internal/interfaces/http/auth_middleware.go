package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/pkg/jwt"
)

// Locals keys para identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// IdentityMiddleware extrae la identidad del Bearer Token si viene y es válido;
// si no, la petición sigue como anónima (userID vacío). El core solo registra
// al actor para auditoría, no exige autenticación en pedidos/movimientos.
func IdentityMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token != "" && jwtSecret != "" {
			if userID, role, err := jwt.Parse(jwtSecret, token); err == nil {
				c.Locals(LocalUserID, userID)
				c.Locals(LocalRole, role)
			}
		}
		return c.Next()
	}
}

// RequireAuth exige un Bearer Token válido (rutas de administración del catálogo).
func RequireAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		userID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID devuelve el UserID del contexto, o nil si la petición es anónima.
func GetUserID(c *fiber.Ctx) *string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// GetRole devuelve el rol del contexto (vacío si anónimo).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

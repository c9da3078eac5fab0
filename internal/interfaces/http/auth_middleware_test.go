package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/panaderia-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/panaderia-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "panaderia-api-test"
	testExpMin    = 60
)

// buildIdentityApp app mínima con IdentityMiddleware y un handler que expone
// la identidad resuelta (o su ausencia).
func buildIdentityApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", apphttp.IdentityMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		userID := apphttp.GetUserID(c)
		anon := userID == nil
		resp := fiber.Map{"anonymous": anon, "role": apphttp.GetRole(c)}
		if !anon {
			resp["user_id"] = *userID
		}
		return c.JSON(resp)
	})
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// IdentityMiddleware — las rutas de mostrador aceptan anónimos
// ──────────────────────────────────────────────────────────────────────────────

func TestIdentityMiddleware_SinToken_SigueComoAnonimo(t *testing.T) {
	app := buildIdentityApp()
	resp := doRequest(t, app, "/whoami", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"una petición sin token no debe ser rechazada")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["anonymous"])
}

func TestIdentityMiddleware_TokenValido_CargaIdentidad(t *testing.T) {
	app := buildIdentityApp()
	resp := doRequest(t, app, "/whoami", token(t, "empleado"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["anonymous"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "empleado", body["role"])
}

func TestIdentityMiddleware_TokenInvalido_SigueComoAnonimo(t *testing.T) {
	// Un token basura no bloquea la petición de mostrador: solo se ignora.
	app := buildIdentityApp()
	resp := doRequest(t, app, "/whoami", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["anonymous"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAuth — la administración del catálogo exige token
// ──────────────────────────────────────────────────────────────────────────────

func buildProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
	})
	return app
}

func TestRequireAuth_SinHeader_Retorna401(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireAuth_TokenInvalido_Retorna401(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireAuth_TokenValido_Pasa(t *testing.T) {
	app := buildProtectedApp()
	resp := doRequest(t, app, "/protected", token(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt — integridad de generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "empleado", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "empleado", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

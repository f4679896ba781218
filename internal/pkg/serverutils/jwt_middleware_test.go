package serverutils_test

import (
	"testing"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func callerApp(middleware fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(middleware)
	app.Get("/test", func(ctx *fiber.Ctx) error {
		caller := serverutils.CallerFromCtx(ctx)
		return ctx.JSON(serverutils.SuccessResponse("ok", caller))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	userId := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "role": "owner", "exp": exp}), wantStatus: fiber.StatusOK},
		{name: "lower case scheme", header: "bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "exp": exp}), wantStatus: fiber.StatusOK},
		{name: "no header", wantStatus: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", jwt.MapClaims{"user_id": userId.String(), "exp": exp}), wantStatus: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"user_id": userId.String(), "exp": time.Now().Add(-time.Hour).Unix()}), wantStatus: fiber.StatusUnauthorized},
		{name: "missing user id", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"exp": exp}), wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			status, env := doRequest(t, callerApp(serverutils.NewJwtMiddleware(testSecret)), "/test", headers)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus == fiber.StatusOK, env.Success)
		})
	}
}

func TestOptionalJwtMiddleware(t *testing.T) {
	app := callerApp(serverutils.NewOptionalJwtMiddleware(testSecret))

	status, env := doRequest(t, app, "/test", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"UserId":"00000000-0000-0000-0000-000000000000","Roles":null}`, string(env.Data))
}

func TestParseToken_Roles(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   []entity.Role
	}{
		{name: "single role", claims: jwt.MapClaims{"user_id": userId.String(), "role": "Admin"}, want: []entity.Role{entity.RoleAdmin}},
		{name: "role list", claims: jwt.MapClaims{"user_id": userId.String(), "roles": []interface{}{"user", "owner"}}, want: []entity.Role{entity.RoleUser, entity.RoleOwner}},
		{name: "defaults to user", claims: jwt.MapClaims{"user_id": userId.String()}, want: []entity.Role{entity.RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller, err := serverutils.ParseToken(signToken(t, testSecret, tt.claims), testSecret)
			require.NoError(t, err)
			assert.Equal(t, userId, caller.UserId)
			assert.Equal(t, tt.want, caller.Roles)
		})
	}
}

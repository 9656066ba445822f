package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fundit/internal/config"
	"fundit/internal/models"
)

func useTestConfig() {
	config.Set(&config.Config{
		JWTSecret:        "test-secret",
		JWTExpirationDur: 15 * time.Minute,
		RefreshTokenDur:  time.Hour,
	})
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID"), "guest": c.GetBool("isGuest")})
	})
	return r
}

func authRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	useTestConfig()
	user := &models.User{Base: models.Base{ID: "0190b7a4-1111-7000-8000-000000000001"}, Email: "a@example.com", IsGuest: true}

	access, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	refresh, err := GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	t.Run("valid access token", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Bearer "+access)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := parseBody(t, rec)
		if body["user_id"] != user.ID {
			t.Errorf("expected user id %s, got %v", user.ID, body["user_id"])
		}
		if body["guest"] != true {
			t.Error("expected guest claim to be propagated")
		}
	})

	t.Run("missing header", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %s", code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Token "+access)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Bearer "+refresh)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_TOKEN" {
			t.Errorf("expected INVALID_TOKEN, got %s", code)
		}
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		rec := authRequest(setupAuthRouter(), "Bearer "+access+"x")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestValidateRefreshToken(t *testing.T) {
	useTestConfig()
	user := &models.User{Base: models.Base{ID: "0190b7a4-1111-7000-8000-000000000002"}, Email: "b@example.com"}

	refresh, _ := GenerateRefreshToken(user)
	claims, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("expected valid refresh token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user id %s, got %s", user.ID, claims.UserID)
	}

	access, _ := GenerateAccessToken(user)
	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("access token must not validate as refresh token")
	}

	if len(HashToken(refresh)) != 64 {
		t.Error("expected SHA-256 hex digest")
	}
}

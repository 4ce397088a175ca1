package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"35", "35.00"},
		{"999.5", "999.50"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-2500.25", "-2,500.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	old := CurrencySymbol
	t.Cleanup(func() { CurrencySymbol = old })

	CurrencySymbol = "Tk"
	assert.Equal(t, "1,250.00 Tk", FormatCurrency(decimal.NewFromInt(1250)))
}

func withJWT(t *testing.T, ttl time.Duration) {
	t.Helper()
	oldSecret, oldTTL := JWTSecret, TokenTTL
	t.Cleanup(func() { JWTSecret, TokenTTL = oldSecret, oldTTL })
	InitJWT("utils-test-secret-0123456789", ttl)
}

func TestGenerateAndParseToken(t *testing.T) {
	withJWT(t, time.Hour)

	token, err := GenerateToken(4, "member", 9)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(4), claims.UserID)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, uint(9), claims.MemberID)
	assert.NotEmpty(t, claims.ID)

	again, err := GenerateToken(4, "member", 9)
	require.NoError(t, err)
	assert.NotEqual(t, token, again, "every token carries its own id")
}

func TestParseTokenRejects(t *testing.T) {
	withJWT(t, time.Hour)
	token, err := GenerateToken(1, "admin", 0)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err, "tampered signature")

	_, err = ParseToken("garbage")
	assert.Error(t, err)

	InitJWT("another-secret-0123456789", time.Hour)
	_, err = ParseToken(token)
	assert.Error(t, err, "signed with a different secret")
}

func TestGenerateTokenNeedsSecret(t *testing.T) {
	withJWT(t, time.Hour)
	JWTSecret = nil
	_, err := GenerateToken(1, "admin", 0)
	assert.Error(t, err)
}

func TestBlacklist(t *testing.T) {
	withJWT(t, time.Hour)
	token, err := GenerateToken(2, "admin", 0)
	require.NoError(t, err)

	assert.False(t, IsTokenBlacklisted(token))
	BlacklistToken(token)
	assert.True(t, IsTokenBlacklisted(token))

	_, err = ParseToken(token)
	assert.EqualError(t, err, "token has been revoked")
}

func TestPurgeBlacklist(t *testing.T) {
	withJWT(t, time.Minute)
	BlacklistToken("purge-me")

	assert.Equal(t, 0, PurgeBlacklist(time.Now()))
	assert.GreaterOrEqual(t, PurgeBlacklist(time.Now().Add(2*time.Minute)), 1)
	assert.False(t, IsTokenBlacklisted("purge-me"))
}

func TestRespondJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, http.StatusOK, "Summary loaded", gin.H{"meals": 2})

	var resp JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "Summary loaded", resp.Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	RespondError(c, http.StatusNotFound, errors.New("member 3 not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"member 3 not found"}`, w.Body.String())
}

func TestIsXHR(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/daily-meals", nil)
	assert.False(t, IsXHR(c))

	c.Request.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, IsXHR(c))
}

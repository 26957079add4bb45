package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-token"

// buildInitData produces a signed initData query string the way the
// Telegram client would.
func buildInitData(t *testing.T, botToken string, authDate time.Time, userJSON string) string {
	t.Helper()

	values := url.Values{}
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAETest")
	if userJSON != "" {
		values.Set("user", userJSON)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+values.Get(k))
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(parts, "\n")))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))

	return values.Encode()
}

func TestVerifyInitData(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, false)

	userJSON := `{"id":446746688,"username":"anna","first_name":"Anna"}`
	initData := buildInitData(t, testBotToken, time.Now(), userJSON)

	user, err := v.Verify(initData)
	require.NoError(t, err)
	assert.Equal(t, int64(446746688), user.ID)
	assert.Equal(t, "anna", user.Username)
	assert.Equal(t, "Anna", user.FirstName)
}

func TestVerifyInitDataRejectsTamperedPayload(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, false)

	userJSON := `{"id":1,"username":"mallory","first_name":"M"}`
	initData := buildInitData(t, "999:other-token", time.Now(), userJSON)

	_, err := v.Verify(initData)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataRejectsExpired(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, false)

	userJSON := `{"id":1,"first_name":"Old"}`
	initData := buildInitData(t, testBotToken, time.Now().Add(-25*time.Hour), userJSON)

	_, err := v.Verify(initData)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataRequiresUser(t *testing.T) {
	v := NewInitDataVerifier(testBotToken, false)

	initData := buildInitData(t, testBotToken, time.Now(), "")

	_, err := v.Verify(initData)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataSkipSignature(t *testing.T) {
	v := NewInitDataVerifier("", true)

	values := url.Values{}
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
	values.Set("user", `{"id":7,"first_name":"Dev"}`)
	values.Set("hash", "not-checked")

	user, err := v.Verify(values.Encode())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeVerifier(t *testing.T) {
	v1, err := generateCodeVerifier()
	require.NoError(t, err)
	assert.Len(t, v1, 128)
	for _, c := range v1 {
		assert.Contains(t, codeVerifierChars, string(c))
	}

	v2, err := generateCodeVerifier()
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestCodeChallenge(t *testing.T) {
	// RFC 7636 appendix B test vector
	challenge := codeChallenge("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestPairHub(t *testing.T) {
	var tokenCalls atomic.Int32

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth/authorize":
			assert.Equal(t, "homesmart.local", r.URL.Query().Get("audience"))
			assert.Equal(t, "S256", r.URL.Query().Get("code_challenge_method"))
			assert.NotEmpty(t, r.URL.Query().Get("code_challenge"))
			io.WriteString(w, `{"code": "auth-code-1"}`)

		case "/v1/oauth/token":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "auth-code-1", r.PostForm.Get("code"))
			assert.NotEmpty(t, r.PostForm.Get("code_verifier"))

			// First poll: button not pressed yet
			if tokenCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			io.WriteString(w, `{"access_token": "the-token"}`)

		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "https://")
	token, err := PairHub(context.Background(), host, "dirigera-tui", 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
	assert.GreaterOrEqual(t, tokenCalls.Load(), int32(2))
}

func TestPairHubTimeout(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth/authorize":
			io.WriteString(w, `{"code": "auth-code-1"}`)
		case "/v1/oauth/token":
			// Button never pressed
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "https://")
	_, err := PairHub(context.Background(), host, "dirigera-tui", 1500*time.Millisecond)
	assert.ErrorIs(t, err, ErrPairingTimeout)
}

func TestGetHubStatus(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hub/status", r.URL.Path)
		assert.Equal(t, "Bearer the-token", r.Header.Get("Authorization"))
		io.WriteString(w, `{"id": "hub-123", "attributes": {"customName": "My hub", "firmwareVersion": "2.500.0"}}`)
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "https://")
	status, err := GetHubStatus(context.Background(), host, "the-token")
	require.NoError(t, err)
	assert.Equal(t, "hub-123", status.ID)
	assert.Equal(t, "My hub", status.Name)
	assert.Equal(t, "2.500.0", status.Firmware)
}

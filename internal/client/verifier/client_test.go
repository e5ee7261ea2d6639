package verifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decentrix/decentrix/internal/common"
)

func TestChallenge(t *testing.T) {
	const message = "localhost wants you to sign in:\n0xabc\n\nNonce: n1"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/metamask/message", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0xabc", req["address"])
		assert.Equal(t, "localhost", req["domain"])
		assert.Equal(t, "http://localhost", req["uri"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(message))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	got, err := c.Challenge(context.Background(), "0xabc", "localhost", "http://localhost")
	require.NoError(t, err)
	// the body is the message, byte for byte
	assert.Equal(t, message, got)
}

func TestChallenge_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Challenge(context.Background(), "0xabc", "d", "u")
	assert.Error(t, err)
}

func TestChallenge_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Challenge(context.Background(), "0xabc", "d", "u")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		success bool
	}{
		{name: "accepted", success: true},
		{name: "rejected", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/metamask/verify", r.URL.Path)

				var req map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "the message", req["message"])
				assert.Equal(t, "0x0102", req["signature"])

				json.NewEncoder(w).Encode(map[string]bool{"success": tt.success})
			}))
			defer srv.Close()

			c := New(srv.URL, nil)
			ok, err := c.Verify(context.Background(), "the message", []byte{0x01, 0x02})
			require.NoError(t, err)
			assert.Equal(t, tt.success, ok)
		})
	}
}

func TestVerify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Verify(context.Background(), "m", []byte{0x01})
	assert.Error(t, err)
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signin", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	token, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestSignIn_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSignUp_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		http.Error(w, "exists", http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.SignUp(context.Background(), SignUpInput{Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrorConflict)
}

func TestMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(Profile{ID: "u1", Email: "a@b.c", FirstName: "Jane", LastName: "Doe"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	profile, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.DisplayName())
}

func TestMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Me(context.Background(), "bad")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestProfile_DisplayNameFallback(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, "User", p.DisplayName())

	p = &Profile{FirstName: "Jane"}
	assert.Equal(t, "Jane", p.DisplayName())
}

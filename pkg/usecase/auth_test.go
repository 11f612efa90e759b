package usecase_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

type testIdP struct {
	key     jwk.Key
	server  *httptest.Server
	fetches atomic.Int32
}

func newTestIdP(t *testing.T) *testIdP {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	gt.NoError(t, err).Required()
	key, err := jwk.FromRaw(raw)
	gt.NoError(t, err).Required()
	gt.NoError(t, key.Set(jwk.KeyIDKey, "test-key")).Required()
	gt.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256)).Required()

	pub, err := key.PublicKey()
	gt.NoError(t, err).Required()
	set := jwk.NewSet()
	gt.NoError(t, set.AddKey(pub)).Required()

	idp := &testIdP{key: key}
	idp.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idp.fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(idp.server.Close)
	return idp
}

func (x *testIdP) sign(t *testing.T, sub, iss, aud string, exp time.Time) string {
	t.Helper()
	b := jwt.NewBuilder().Issuer(iss).Audience([]string{aud}).IssuedAt(time.Now()).Expiration(exp)
	if sub != "" {
		b = b.Subject(sub)
	}
	tok, err := b.Build()
	gt.NoError(t, err).Required()
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.RS256, x.key))
	gt.NoError(t, err).Required()
	return string(signed)
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestJWTResolver(t *testing.T) {
	ctx := context.Background()
	idp := newTestIdP(t)
	const iss, aud = "https://idp.example.com/", "bcplanner"

	resolver := usecase.NewJWTResolver(idp.server.URL,
		usecase.WithIssuer(iss),
		usecase.WithAudience(aud),
	)

	t.Run("valid token resolves subject", func(t *testing.T) {
		token := idp.sign(t, "user-123", iss, aud, time.Now().Add(time.Hour))
		owner, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.NoError(t, err).Required()
		gt.Value(t, owner).Equal(model.OwnerID("user-123"))
	})

	t.Run("key set is cached", func(t *testing.T) {
		before := idp.fetches.Load()
		token := idp.sign(t, "user-123", iss, aud, time.Now().Add(time.Hour))
		_, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.NoError(t, err).Required()
		gt.Value(t, idp.fetches.Load()).Equal(before)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := resolver.ResolveOwner(ctx, requestWithToken(""))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token := idp.sign(t, "user-123", iss, "other", time.Now().Add(time.Hour))
		_, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := idp.sign(t, "user-123", "https://evil.example.com/", aud, time.Now().Add(time.Hour))
		_, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("expired token", func(t *testing.T) {
		token := idp.sign(t, "user-123", iss, aud, time.Now().Add(-time.Hour))
		_, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("token without subject", func(t *testing.T) {
		token := idp.sign(t, "", iss, aud, time.Now().Add(time.Hour))
		_, err := resolver.ResolveOwner(ctx, requestWithToken(token))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := resolver.ResolveOwner(ctx, requestWithToken("not-a-jwt"))
		gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
	})

	t.Run("expired key set is fetched again", func(t *testing.T) {
		r := usecase.NewJWTResolver(idp.server.URL, usecase.WithKeySetTTL(time.Minute))
		now := time.Now()
		usecase.SetKeySetClock(r, func() time.Time { return now })

		token := idp.sign(t, "user-123", iss, aud, time.Now().Add(time.Hour))
		_, err := r.ResolveOwner(ctx, requestWithToken(token))
		gt.NoError(t, err).Required()
		before := idp.fetches.Load()

		now = now.Add(2 * time.Minute)
		_, err = r.ResolveOwner(ctx, requestWithToken(token))
		gt.NoError(t, err).Required()
		gt.Value(t, idp.fetches.Load()).Equal(before + 1)
	})
}

func TestJWTResolver_UnreachableJWKS(t *testing.T) {
	r := usecase.NewJWTResolver("http://127.0.0.1:1/jwks")
	_, err := r.ResolveOwner(context.Background(), requestWithToken("a.b.c"))
	gt.Error(t, err).Is(usecase.ErrUpstream)
}

func TestNoAuthnResolver(t *testing.T) {
	r := usecase.NewNoAuthnResolver("dev-owner")
	owner, err := r.ResolveOwner(context.Background(), requestWithToken(""))
	gt.NoError(t, err).Required()
	gt.Value(t, owner).Equal(model.OwnerID("dev-owner"))

	_, err = usecase.NewNoAuthnResolver("").ResolveOwner(context.Background(), requestWithToken(""))
	gt.Error(t, err).Is(usecase.ErrNotAuthenticated)
}

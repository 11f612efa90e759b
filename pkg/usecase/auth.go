package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

// OwnerResolver identifies the owner of an inbound request. It returns an
// error wrapping ErrNotAuthenticated when no owner can be resolved.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, r *http.Request) (model.OwnerID, error)
}

const defaultAcceptableSkew = 10 * time.Second

// JWTResolver verifies bearer tokens issued by an external identity provider
// against its JWKS and uses the "sub" claim as owner ID.
type JWTResolver struct {
	jwksURL  string
	issuer   string
	audience string
	skew     time.Duration
	keys     *keySetCache
}

var _ OwnerResolver = &JWTResolver{}

// JWTOption is a functional option for JWTResolver
type JWTOption func(*JWTResolver)

// WithIssuer requires the "iss" claim to match
func WithIssuer(issuer string) JWTOption {
	return func(r *JWTResolver) {
		r.issuer = issuer
	}
}

// WithAudience requires the "aud" claim to contain audience
func WithAudience(audience string) JWTOption {
	return func(r *JWTResolver) {
		r.audience = audience
	}
}

// WithKeySetTTL sets how long a fetched JWKS is reused
func WithKeySetTTL(ttl time.Duration) JWTOption {
	return func(r *JWTResolver) {
		r.keys.ttl = ttl
	}
}

func NewJWTResolver(jwksURL string, opts ...JWTOption) *JWTResolver {
	r := &JWTResolver{
		jwksURL: jwksURL,
		skew:    defaultAcceptableSkew,
		keys:    newKeySetCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveOwner verifies the Authorization bearer token of the request
func (x *JWTResolver) ResolveOwner(ctx context.Context, r *http.Request) (model.OwnerID, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return "", goerr.Wrap(ErrNotAuthenticated, "bearer token is missing")
	}

	keySet, err := x.keys.get(ctx, x.jwksURL)
	if err != nil {
		return "", goerr.Wrap(classify(ErrUpstream, err), "failed to fetch JWKS", goerr.V("jwks_url", x.jwksURL))
	}

	parseOpts := []jwt.ParseOption{
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(x.skew),
	}
	if x.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(x.issuer))
	}
	if x.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(x.audience))
	}

	token, err := jwt.Parse([]byte(raw), parseOpts...)
	if err != nil {
		return "", goerr.Wrap(classify(ErrNotAuthenticated, err), "failed to verify bearer token")
	}

	owner := model.OwnerID(token.Subject())
	if err := owner.Validate(); err != nil {
		return "", goerr.Wrap(classify(ErrNotAuthenticated, err), "token has no subject")
	}
	return owner, nil
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth selects how request owners are resolved: bearer JWTs verified against
// an IdP's JWKS, or a fixed development owner.
type Auth struct {
	jwksURL  string
	issuer   string
	audience string
	keyTTL   time.Duration
	noAuth   string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwks-url",
			Usage:       "JWKS URL of the identity provider that issues bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BCPLANNER_AUTH_JWKS_URL"),
			Destination: &x.jwksURL,
		},
		&cli.StringFlag{
			Name:        "auth-issuer",
			Usage:       "Expected iss claim of bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BCPLANNER_AUTH_ISSUER"),
			Destination: &x.issuer,
		},
		&cli.StringFlag{
			Name:        "auth-audience",
			Usage:       "Expected aud claim of bearer tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BCPLANNER_AUTH_AUDIENCE"),
			Destination: &x.audience,
		},
		&cli.DurationFlag{
			Name:        "auth-jwks-ttl",
			Usage:       "How long a fetched JWKS is reused",
			Category:    "Authentication",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("BCPLANNER_AUTH_JWKS_TTL"),
			Destination: &x.keyTTL,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified owner ID (development only). Example: --no-auth=dev-user",
			Category:    "Authentication",
			Sources:     cli.EnvVars("BCPLANNER_NO_AUTH"),
			Destination: &x.noAuth,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("jwks_url", x.jwksURL),
		slog.String("issuer", x.issuer),
		slog.String("audience", x.audience),
		slog.Bool("no_auth", x.noAuth != ""),
	)
}

// IsNoAuthMode reports whether a fixed development owner is configured
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuth != ""
}

// Configure returns the owner resolver for the HTTP server
func (x *Auth) Configure() (usecase.OwnerResolver, error) {
	switch {
	case x.noAuth != "" && x.jwksURL != "":
		return nil, goerr.Wrap(ErrConflictingAuth, "cannot configure authentication")

	case x.noAuth != "":
		logging.Default().Warn("Running in no-auth mode (development only)", "owner_id", x.noAuth)
		return usecase.NewNoAuthnResolver(model.OwnerID(x.noAuth)), nil

	case x.jwksURL != "":
		opts := []usecase.JWTOption{usecase.WithKeySetTTL(x.keyTTL)}
		if x.issuer != "" {
			opts = append(opts, usecase.WithIssuer(x.issuer))
		}
		if x.audience != "" {
			opts = append(opts, usecase.WithAudience(x.audience))
		}
		logging.Default().Info("JWT authentication enabled", "jwks_url", x.jwksURL)
		return usecase.NewJWTResolver(x.jwksURL, opts...), nil

	default:
		return nil, goerr.Wrap(ErrMissingFlag, "either --auth-jwks-url or --no-auth is required",
			goerr.V(FlagKey, "auth-jwks-url"))
	}
}

package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"SHT20Monitor.influxDB/internal/models"
	"SHT20Monitor.influxDB/internal/utils"
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// NewJWT returns a middleware that accepts only HS256 bearer tokens signed
// with secret and carrying the expected issuer and audience.
func NewJWT(secret, issuer, audience string) (func(http.Handler) http.Handler, error) {
	if secret == "" || issuer == "" || audience == "" {
		return nil, errors.New("JWT secret, issuer and audience are required")
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(secret), nil
	}

	jwtValidator, err := validator.New(keyFunc, validator.HS256, issuer, []string{audience})
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT validator: %w", err)
	}

	mw := jwtmiddleware.New(jwtValidator.ValidateToken, jwtmiddleware.WithErrorHandler(authError))
	return mw.CheckJWT, nil
}

// Claims returns the validated claims placed on the request context, if any.
func Claims(r *http.Request) (*validator.ValidatedClaims, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	return claims, ok
}

func authError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("JWT authentication failed for %s %s: %v", r.Method, r.URL.Path, err)

	message := "Invalid token"
	if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
		message = "Authorization header missing"
	}
	utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeUnauthorized, message, nil, http.StatusUnauthorized))
}

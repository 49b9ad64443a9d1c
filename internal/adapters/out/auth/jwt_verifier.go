// Package auth verifies the tokens presented on realtime connections.
package auth

import (
	"errors"
	"fmt"
	"strconv"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers every verification failure: bad signature, wrong
	// signing method, expired token, or a missing subject. Callers treat all of
	// them the same way and drop the connection.
	ErrInvalidToken = errors.New("invalid token")
)

// connectionClaims is the JWT payload issued to clients. The registered
// subject carries the numeric user identity.
type connectionClaims struct {
	jwt.RegisteredClaims
}

// JWTVerifier verifies HMAC-signed connection tokens against a shared secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify decodes the token, checks the signature and expiry, and extracts the
// subject identity. Any failure is reported as an invalid token.
func (v *JWTVerifier) Verify(tokenString string) (ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &connectionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*connectionClaims)
	if !ok || !token.Valid {
		return ports.Claims{}, ErrInvalidToken
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: non-numeric subject", ErrInvalidToken)
	}

	id, err := kernel.NewID(subject)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return ports.Claims{SubjectID: id}, nil
}

package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ReportLink is a validated presigned report access token.
type ReportLink struct {
	AccountID int64
	Report    string
	TokenID   string
	ExpiresAt time.Time
}

// ReportLinkSigner issues and validates short-lived signed tokens that let a
// report be fetched without an interactive session (shared dashboards,
// scheduled retrieval).
type ReportLinkSigner struct {
	secretKey []byte
}

func NewReportLinkSigner(secretKey []byte) *ReportLinkSigner {
	return &ReportLinkSigner{secretKey: secretKey}
}

// Sign creates a token granting access to one named report.
func (s *ReportLinkSigner) Sign(accountID int64, report string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"report":     report,
		"jti":        uuid.New().String(),
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and checks a report link token.
func (s *ReportLinkSigner) Validate(tokenString string) (*ReportLink, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	accountID, ok := (*claims)["account_id"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid account_id claim")
	}

	report, ok := (*claims)["report"].(string)
	if !ok {
		return nil, errors.New("missing or invalid report claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	return &ReportLink{
		AccountID: int64(accountID),
		Report:    report,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized covers a missing, malformed or rejected credential.
var ErrUnauthorized = errors.New("invalid or missing credential")

// Identity is the principal resolved from a bearer token by the external
// identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IdentityService resolves bearer tokens against the identity provider.
// Resolution happens on every request; nothing is cached here.
type IdentityService struct {
	baseURL string
	client  *http.Client
}

func NewIdentityService(baseURL string) *IdentityService {
	return &IdentityService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve validates a raw Authorization header value and returns the caller
// identity. The header must be "Bearer <token>".
func (s *IdentityService) Resolve(ctx context.Context, authorization string) (*Identity, error) {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorized
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("identity provider returned malformed body: %w", err)
	}
	if identity.ID == "" {
		return nil, ErrUnauthorized
	}
	if identity.Role == "" {
		identity.Role = "practitioner"
	}

	return &identity, nil
}

package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIdentityResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("Expected path /auth/v1/user, got %s", r.URL.Path)
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			json.NewEncoder(w).Encode(Identity{ID: "user-1", Email: "user@example.com", Role: "moderator"})
		case "Bearer roleless-token":
			json.NewEncoder(w).Encode(Identity{ID: "user-2", Email: "plain@example.com"})
		case "Bearer hollow-token":
			json.NewEncoder(w).Encode(Identity{})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	svc := NewIdentityService(server.URL)

	identity, err := svc.Resolve(context.Background(), "Bearer good-token")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identity.ID != "user-1" || identity.Role != "moderator" {
		t.Errorf("Unexpected identity: %+v", identity)
	}

	// Missing role defaults to practitioner.
	identity, err = svc.Resolve(context.Background(), "Bearer roleless-token")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identity.Role != "practitioner" {
		t.Errorf("Expected default role practitioner, got %s", identity.Role)
	}

	tests := []struct {
		name          string
		authorization string
	}{
		{"empty header", ""},
		{"not a bearer scheme", "Basic abc123"},
		{"bearer with empty token", "Bearer "},
		{"rejected by provider", "Bearer bad-token"},
		{"provider returns no subject", "Bearer hollow-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Resolve(context.Background(), tt.authorization); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

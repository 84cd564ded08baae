package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/services"

	"github.com/gin-gonic/gin"
)

func castVote(r *gin.Engine, token string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/suggestions/vote", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedSuggestion(t *testing.T, submittedBy string) models.Suggestion {
	t.Helper()
	db.DB.Create(&models.Practitioner{ID: submittedBy, Email: submittedBy + "@example.com"})
	suggestion := models.Suggestion{
		Title:       "Add a cardiology deep dive",
		SubmittedBy: submittedBy,
		Status:      models.SuggestionStatusPending,
	}
	if err := db.DB.Create(&suggestion).Error; err != nil {
		t.Fatalf("failed to seed suggestion: %v", err)
	}
	return suggestion
}

type voteResponse struct {
	Message      string `json:"message"`
	SuggestionID uint   `json:"suggestion_id"`
	Action       string `json:"action"`
	NewVoteCount int    `json:"new_vote_count"`
	UserHasVoted bool   `json:"user_has_voted"`
}

func TestVoteTransitions(t *testing.T) {
	r, stub := setupTest(t)
	stub.addToken("tok-bob", services.Identity{ID: "bob-1", Email: "bob@example.com"})
	suggestion := seedSuggestion(t, "author-1")

	// upvote from NOT_VOTED succeeds
	w := castVote(r, "tok-bob", map[string]interface{}{"suggestion_id": suggestion.ID, "action": "upvote"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for first upvote, got %d. Body: %s", w.Code, w.Body.String())
	}
	var resp voteResponse
	decodeBody(t, w, &resp)
	if resp.NewVoteCount != 1 {
		t.Errorf("Expected new_vote_count 1, got %d", resp.NewVoteCount)
	}
	if !resp.UserHasVoted {
		t.Error("Expected user_has_voted true after upvote")
	}

	var voteRows int64
	db.DB.Model(&models.SuggestionVote{}).
		Where("suggestion_id = ? AND practitioner_id = ?", suggestion.ID, "bob-1").
		Count(&voteRows)
	if voteRows != 1 {
		t.Errorf("Expected 1 vote row, got %d", voteRows)
	}

	// second upvote without removal conflicts, no state change
	w = castVote(r, "tok-bob", map[string]interface{}{"suggestion_id": suggestion.ID, "action": "upvote"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate upvote, got %d", w.Code)
	}
	var stored models.Suggestion
	db.DB.First(&stored, suggestion.ID)
	if stored.Upvotes != 1 {
		t.Errorf("Expected upvotes unchanged at 1 after conflict, got %d", stored.Upvotes)
	}

	// remove_vote from VOTED succeeds
	w = castVote(r, "tok-bob", map[string]interface{}{"suggestion_id": suggestion.ID, "action": "remove_vote"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for remove_vote, got %d. Body: %s", w.Code, w.Body.String())
	}
	decodeBody(t, w, &resp)
	if resp.NewVoteCount != 0 {
		t.Errorf("Expected new_vote_count 0, got %d", resp.NewVoteCount)
	}
	if resp.UserHasVoted {
		t.Error("Expected user_has_voted false after removal")
	}

	// remove_vote with no existing vote conflicts
	w = castVote(r, "tok-bob", map[string]interface{}{"suggestion_id": suggestion.ID, "action": "remove_vote"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for removing a missing vote, got %d", w.Code)
	}
}

func TestVoteValidation(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "no credential",
			token:          "",
			body:           map[string]interface{}{"suggestion_id": 1, "action": "upvote"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown token",
			token:          "tok-nobody",
			body:           map[string]interface{}{"suggestion_id": 1, "action": "upvote"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown action",
			token:          "tok-bob",
			body:           map[string]interface{}{"suggestion_id": 1, "action": "sideways"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "suggestion not found",
			token:          "tok-bob",
			body:           map[string]interface{}{"suggestion_id": 9999, "action": "upvote"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, stub := setupTest(t)
			stub.addToken("tok-bob", services.Identity{ID: "bob-1", Email: "bob@example.com"})
			seedSuggestion(t, "author-1")

			w := castVote(r, tt.token, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			var envelope struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			decodeBody(t, w, &envelope)
			if envelope.Error.Message == "" {
				t.Error("Expected an error envelope with a message")
			}
		})
	}
}

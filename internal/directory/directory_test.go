package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/models"
)

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewService(nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := svc.Search(context.Background(), q)
		if err != nil {
			t.Errorf("Search(%q) error = %v, want nil", q, err)
		}
		if results == nil {
			t.Errorf("Search(%q) = nil, want empty slice", q)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) = %d results, want 0", q, len(results))
		}
	}
}

func TestNewWorkerSummary_WithSnapshot(t *testing.T) {
	bio := "Fault finding and rewires."
	profile := &models.WorkerProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Asha Patel",
		Trade:  "Electrician",
		City:   "Pune",
		Area:   "Kothrud",
		Bio:    &bio,
		Skills: []string{"Reliable", "Tidy work"},
	}
	snapshot := &models.TrustScoreSnapshot{
		WorkerID:  profile.ID,
		Total:     18,
		Sentiment: 7,
		Referrals: 5,
		Verified:  6,
	}

	summary := NewWorkerSummary(profile, snapshot)

	if summary.ID != profile.ID {
		t.Errorf("summary id = %s, want %s", summary.ID, profile.ID)
	}
	if summary.LocationLabel != "Kothrud, Pune" {
		t.Errorf("location label = %q, want %q", summary.LocationLabel, "Kothrud, Pune")
	}
	if summary.Trust.Total != 18 || summary.Trust.Sentiment != 7 || summary.Trust.Referrals != 5 || summary.Trust.Verified != 6 {
		t.Errorf("trust = %+v, want {18 7 5 6}", summary.Trust)
	}
	if len(summary.SentimentTags) != 2 {
		t.Errorf("sentiment tags = %v, want the profile's skills", summary.SentimentTags)
	}
}

func TestNewWorkerSummary_NilSnapshot(t *testing.T) {
	profile := &models.WorkerProfile{
		ID:    uuid.New(),
		Name:  "Dev Sharma",
		Trade: "Plumber",
		City:  "Pune",
		Area:  "Baner",
	}

	summary := NewWorkerSummary(profile, nil)

	if summary.Trust != (models.TrustBreakdown{}) {
		t.Errorf("trust with no snapshot = %+v, want zero value", summary.Trust)
	}
	if summary.SentimentTags == nil {
		t.Error("sentiment tags should be an empty slice, not nil, so the JSON field renders as []")
	}
}

func TestNewFallbackSummary_ClientWithProfile(t *testing.T) {
	clientProfile := &models.ClientProfile{
		ID:   uuid.New(),
		City: "Pune",
		Area: "Aundh",
	}

	summary := NewFallbackSummary(uuid.New(), "Meera Nair", models.UserRoleClient, clientProfile)

	if summary.ID != clientProfile.ID {
		t.Errorf("summary id = %s, want client profile id %s", summary.ID, clientProfile.ID)
	}
	if summary.Trade != "Client" {
		t.Errorf("trade = %q, want %q", summary.Trade, "Client")
	}
	if summary.City != "Pune" || summary.Area != "Aundh" {
		t.Errorf("location = %q/%q, want the client profile's", summary.City, summary.Area)
	}
	if summary.Trust != (models.TrustBreakdown{}) {
		t.Errorf("fallback trust = %+v, want zero value", summary.Trust)
	}
}

func TestNewFallbackSummary_NoProfile(t *testing.T) {
	userID := uuid.New()

	summary := NewFallbackSummary(userID, "Ghost User", models.UserRoleWorker, nil)

	if summary.ID != userID {
		t.Errorf("summary id = %s, want user id %s", summary.ID, userID)
	}
	if summary.Trade != "Worker" {
		t.Errorf("trade = %q, want %q", summary.Trade, "Worker")
	}
	if summary.City != "Unknown city" || summary.Area != "Unknown area" {
		t.Errorf("location = %q/%q, want unknown placeholders", summary.City, summary.Area)
	}
	if summary.LocationLabel != "Unknown area, Unknown city" {
		t.Errorf("location label = %q", summary.LocationLabel)
	}
}

package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/trust"
)

func TestNewWorkerView(t *testing.T) {
	bio := "Custom furniture and repairs."
	radius := 20
	p := &models.WorkerProfile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Name:     "Sunil Joshi",
		Trade:    "Carpenter",
		City:     "Pune",
		Area:     "Aundh",
		Bio:      &bio,
		Skills:   []string{"Skilled", "Punctual"},
		RadiusKm: &radius,
	}
	snap := &models.TrustScoreSnapshot{Total: 7, Sentiment: 4, Referrals: 1, Verified: 2}

	view := newWorkerView(p, snap)

	assert.Equal(t, p.ID, view.ID)
	assert.Equal(t, p.UserID, view.UserID)
	assert.Equal(t, models.TrustBreakdown{Total: 7, Sentiment: 4, Referrals: 1, Verified: 2}, view.Trust)
	assert.Equal(t, []string{"Skilled", "Punctual"}, view.Skills)
	assert.Equal(t, &radius, view.RadiusKm)
}

func TestNewWorkerView_NilSnapshotAndSkills(t *testing.T) {
	p := &models.WorkerProfile{
		ID:    uuid.New(),
		Name:  "Asha Patel",
		Trade: "Electrician",
		City:  "Pune",
		Area:  "Kothrud",
	}

	view := newWorkerView(p, nil)

	assert.Equal(t, models.TrustBreakdown{}, view.Trust, "missing snapshot renders as zero trust")
	assert.NotNil(t, view.Skills, "skills render as [], not null")
	assert.Empty(t, view.Skills)
}

func TestNewClientView(t *testing.T) {
	p := &models.ClientProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Meera Nair",
		City:   "Pune",
		Area:   "Kothrud",
	}
	stats := trust.NewClientStats(3, 5, 2, 1)

	view := newClientView(p, stats)

	assert.Equal(t, p.ID, view.ID)
	assert.Equal(t, "Meera Nair", view.Name)
	assert.Equal(t, stats, view.Stats)
	assert.Equal(t, view.Stats.PeopleConnected, view.Stats.PeopleEmployed)
}

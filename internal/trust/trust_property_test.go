package trust

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/models"
	"pgregory.net/rapid"
)

// ============================================
// Property Tests for Trust Aggregation
// ============================================

// TestSeedSnapshot_FixedValues tests the first-hire baseline
// A worker's very first snapshot SHALL be exactly
// {total:5, sentiment:3, referrals:1, verified:1, freshness:90}.
func TestSeedSnapshot_FixedValues(t *testing.T) {
	workerID := uuid.New()
	snap := NewSeedSnapshot(workerID)

	if snap.WorkerID != workerID {
		t.Errorf("Seed snapshot worker id = %s, want %s", snap.WorkerID, workerID)
	}
	if snap.Total != 5 || snap.Sentiment != 3 || snap.Referrals != 1 || snap.Verified != 1 || snap.Freshness != 90 {
		t.Errorf("Seed snapshot = {total:%d, sentiment:%d, referrals:%d, verified:%d, freshness:%d}, want {5, 3, 1, 1, 90}",
			snap.Total, snap.Sentiment, snap.Referrals, snap.Verified, snap.Freshness)
	}
}

// TestProperty_ApplyHire_Increments tests the per-hire deltas
// *For any* existing breakdown, one hire SHALL add exactly 2 to total,
// 1 to verified, 1 to referrals, and leave sentiment unchanged.
func TestProperty_ApplyHire_Increments(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		before := models.TrustBreakdown{
			Total:     rapid.IntRange(0, 10000).Draw(rt, "total"),
			Sentiment: rapid.IntRange(0, 10000).Draw(rt, "sentiment"),
			Referrals: rapid.IntRange(0, 10000).Draw(rt, "referrals"),
			Verified:  rapid.IntRange(0, 10000).Draw(rt, "verified"),
		}

		after := ApplyHire(before)

		if after.Total != before.Total+2 {
			t.Fatalf("PROPERTY VIOLATION: total %d + hire = %d, want %d", before.Total, after.Total, before.Total+2)
		}
		if after.Verified != before.Verified+1 {
			t.Fatalf("PROPERTY VIOLATION: verified %d + hire = %d, want %d", before.Verified, after.Verified, before.Verified+1)
		}
		if after.Referrals != before.Referrals+1 {
			t.Fatalf("PROPERTY VIOLATION: referrals %d + hire = %d, want %d", before.Referrals, after.Referrals, before.Referrals+1)
		}
		if after.Sentiment != before.Sentiment {
			t.Fatalf("PROPERTY VIOLATION: sentiment changed from %d to %d on hire", before.Sentiment, after.Sentiment)
		}
	})
}

// TestProperty_ApplyHire_Monotonic tests that repeated hires raise total by 2 each
func TestProperty_ApplyHire_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := NewSeedSnapshot(uuid.New())
		b := seed.Breakdown()
		hires := rapid.IntRange(1, 50).Draw(rt, "hires")

		for i := 0; i < hires; i++ {
			b = ApplyHire(b)
		}

		want := 5 + 2*hires
		if b.Total != want {
			t.Fatalf("PROPERTY VIOLATION: total after %d hires = %d, want %d", hires, b.Total, want)
		}
	})
}

// TestProperty_ClientStats_Identities tests the definitional aliases
// *For any* underlying counts, peopleConnected SHALL equal peopleEmployed
// and reviewsWritten SHALL equal employeeReviews.
func TestProperty_ClientStats_Identities(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stats := NewClientStats(
			rapid.IntRange(0, 100000).Draw(rt, "peopleEmployed"),
			rapid.IntRange(0, 100000).Draw(rt, "jobsPosted"),
			rapid.IntRange(0, 100000).Draw(rt, "employeeReviews"),
			rapid.IntRange(0, 100000).Draw(rt, "workersVouching"),
		)

		if stats.PeopleConnected != stats.PeopleEmployed {
			t.Fatalf("PROPERTY VIOLATION: peopleConnected %d != peopleEmployed %d",
				stats.PeopleConnected, stats.PeopleEmployed)
		}
		if stats.ReviewsWritten != stats.EmployeeReviews {
			t.Fatalf("PROPERTY VIOLATION: reviewsWritten %d != employeeReviews %d",
				stats.ReviewsWritten, stats.EmployeeReviews)
		}
	})
}

// TestNilSnapshot_ZeroBreakdown tests the missing-snapshot default
// A worker without a snapshot SHALL render as all-zero trust, not an error.
func TestNilSnapshot_ZeroBreakdown(t *testing.T) {
	var snap *models.TrustScoreSnapshot
	b := snap.Breakdown()
	if b != (models.TrustBreakdown{}) {
		t.Errorf("nil snapshot breakdown = %+v, want zero value", b)
	}
}

func TestHireJobTitle(t *testing.T) {
	now := time.Date(2026, time.March, 7, 10, 30, 0, 0, time.UTC)
	got := hireJobTitle(now)
	want := fmt.Sprintf("Direct hire - %d/%d/%d", 3, 7, 2026)
	if got != want {
		t.Errorf("hireJobTitle = %q, want %q", got, want)
	}
}

package career

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingStatus_CreatesUnknownUser(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(store, &fakeInsights{})

	status, err := svc.OnboardingStatus(context.Background(), &types.Identity{Subject: "user_new"})
	require.NoError(t, err)
	assert.False(t, status.IsOnboarded)
	assert.Equal(t, 1, store.createdUsers)
	assert.Equal(t, DefaultUserName, store.users["user_new"].Name, "nameless identities get the default name")

	_, err = svc.OnboardingStatus(context.Background(), &types.Identity{Subject: "user_new"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.createdUsers, "user is created only once")
}

func TestOnboardingStatus_NoIdentity(t *testing.T) {
	_, err := NewProfileService(newMemStore(), &fakeInsights{}).OnboardingStatus(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestUpdateProfile_GeneratesMissingInsight(t *testing.T) {
	store := newMemStore()
	gen := &fakeInsights{}
	svc := NewProfileService(store, gen)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	years := 4
	res, err := svc.UpdateProfile(context.Background(), ada, &types.OnboardingRequest{
		Industry:   " tech-software ",
		Experience: &years,
		Bio:        "Analyst",
		Skills:     types.SkillList{"Go", "SQL"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "tech-software", res.Profile.Industry)
	assert.Equal(t, []string{"Go", "SQL"}, res.Profile.Skills)
	require.NotNil(t, res.Insight)
	assert.Equal(t, fixed.Add(7*24*time.Hour), res.Insight.NextUpdate)

	status, err := svc.OnboardingStatus(context.Background(), ada)
	require.NoError(t, err)
	assert.True(t, status.IsOnboarded)
}

func TestUpdateProfile_ReusesExistingInsight(t *testing.T) {
	store := newMemStore()
	gen := &fakeInsights{}
	svc := NewProfileService(store, gen)
	_, err := store.UpsertIndustryInsight(context.Background(), "finance", types.InsightData{GrowthRate: 2}, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	res, err := svc.UpdateProfile(context.Background(), ada, &types.OnboardingRequest{Industry: "finance"})
	require.NoError(t, err)
	assert.Zero(t, gen.calls)
	assert.Equal(t, 2.0, res.Insight.GrowthRate)
}

func TestUpdateProfile_GenerationFailureWritesNothing(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(store, &fakeInsights{err: errors.New("model down")})

	_, err := svc.UpdateProfile(context.Background(), ada, &types.OnboardingRequest{Industry: "finance"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update profile: ")
	assert.Zero(t, store.profileCalls)
}

func TestUpdateProfile_PersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("deadlock detected")
	svc := NewProfileService(store, &fakeInsights{})

	_, err := svc.UpdateProfile(context.Background(), ada, &types.OnboardingRequest{Industry: "finance"})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "failed to update profile: failed to save profile")
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc := NewProfileService(newMemStore(), &fakeInsights{})
	tooMany := 99

	tests := []struct {
		name  string
		req   *types.OnboardingRequest
		field string
	}{
		{"nil request", nil, "industry"},
		{"blank industry", &types.OnboardingRequest{Industry: "   "}, "industry"},
		{"experience out of range", &types.OnboardingRequest{Industry: "finance", Experience: &tooMany}, "experience"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), ada, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInsight(t *testing.T) {
	store := newMemStore()
	gen := &fakeInsights{}
	svc := NewProfileService(store, gen)

	_, err := svc.Insight(context.Background(), ada)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf, "users without an industry have no insight")

	_, err = svc.UpdateProfile(context.Background(), ada, &types.OnboardingRequest{Industry: "health"})
	require.NoError(t, err)
	delete(store.insights, "health")

	insight, err := svc.Insight(context.Background(), ada)
	require.NoError(t, err)
	assert.Equal(t, "health", insight.Industry)
	assert.Equal(t, 2, gen.calls, "missing insight is regenerated on read")
	assert.Contains(t, store.insights, "health")
}

package services

import (
	"sync"
	"testing"

	"likebot-api/internal/config"
	"likebot-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, cfg *models.PolicyConfig) (GateService, PolicyService, *usageService) {
	t.Helper()
	policy := NewPolicyService(&fakePolicyRepo{cfg: cfg}, config.DefaultDailyLimit)
	usage := newTestUsageService(t, newFakeUsageRepo(), "2026-08-29")
	return NewGateService(policy, usage), policy, usage
}

func TestGate_ChannelDenied(t *testing.T) {
	gate, _, _ := newTestGate(t, &models.PolicyConfig{
		AllowedChannels: models.StringSlice{"allowed"},
	})

	d := gate.Evaluate("user", "elsewhere", "123456789", "ind")
	assert.Equal(t, DecisionChannelDenied, d.Code)
}

func TestGate_DisambiguationLeadsToMissingParams(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	// UID arrived in the region slot; after the swap the region slot is
	// empty, so the request is incomplete.
	d := gate.Evaluate("user", "any", "", "123456789")
	assert.Equal(t, DecisionMissingParams, d.Code)
}

func TestGate_MissingParams(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	d := gate.Evaluate("user", "any", "", "")
	assert.Equal(t, DecisionMissingParams, d.Code)

	d = gate.Evaluate("user", "any", "123456789", "")
	assert.Equal(t, DecisionMissingParams, d.Code)
}

func TestGate_InvalidUID(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	// "abc123" cleans to "123": three digits is too short.
	d := gate.Evaluate("user", "any", "abc123", "ind")
	assert.Equal(t, DecisionInvalidUID, d.Code)
}

func TestGate_InvalidRegionCheckedAfterUID(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	d := gate.Evaluate("user", "any", "123456789", "xx")
	assert.Equal(t, DecisionInvalidRegion, d.Code)

	// A bad uid wins over a bad region.
	d = gate.Evaluate("user", "any", "12", "xx")
	assert.Equal(t, DecisionInvalidUID, d.Code)
}

func TestGate_AllowedNormalizesInputs(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	d := gate.Evaluate("user", "any", "uid:123456789", "BRAZIL")
	require.Equal(t, DecisionAllowed, d.Code)
	assert.Equal(t, "123456789", d.UID)
	assert.Equal(t, "nx", d.Region)
	assert.Equal(t, 5, d.Limit)
	assert.Equal(t, 4, d.Remaining, "post-use remaining on an untouched day")
	assert.False(t, d.Unlimited)
}

func TestGate_QuotaExceededAtDefaultLimit(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	for i := 0; i < config.DefaultDailyLimit; i++ {
		require.NoError(t, gate.Confirm("user"))
	}

	d := gate.Evaluate("user", "any", "123456789", "IND")
	assert.Equal(t, DecisionQuotaExceeded, d.Code)
	assert.Equal(t, 5, d.Limit)
}

func TestGate_PerUserLimitOverride(t *testing.T) {
	gate, policy, _ := newTestGate(t, nil)
	require.NoError(t, policy.SetDailyLimitFor("vip", 2))

	require.NoError(t, gate.Confirm("vip"))
	require.NoError(t, gate.Confirm("vip"))

	d := gate.Evaluate("vip", "any", "123456789", "ind")
	assert.Equal(t, DecisionQuotaExceeded, d.Code)
	assert.Equal(t, 2, d.Limit)
}

func TestGate_UnlimitedAndAdminBypassQuota(t *testing.T) {
	gate, _, _ := newTestGate(t, &models.PolicyConfig{
		AdminUsers:     models.StringSlice{"admin"},
		UnlimitedUsers: models.StringSlice{"vip"},
	})

	for _, user := range []string{"vip", "admin"} {
		for i := 0; i < 20; i++ {
			require.NoError(t, gate.Confirm(user))
		}
		d := gate.Evaluate(user, "any", "123456789", "ind")
		assert.Equal(t, DecisionAllowed, d.Code, "user %s must never hit the quota", user)
		assert.True(t, d.Unlimited)
	}
}

func TestGate_ProcessConfirmsOnlyOnSuccess(t *testing.T) {
	gate, _, usage := newTestGate(t, nil)

	d := gate.Process("user", "any", "123456789", "ind", func(Decision) bool { return true })
	require.Equal(t, DecisionAllowed, d.Code)
	count, _ := usage.DailyUsage("user")
	assert.Equal(t, 1, count)

	// Failed external call: no quota consumed.
	d = gate.Process("user", "any", "123456789", "ind", func(Decision) bool { return false })
	require.Equal(t, DecisionAllowed, d.Code)
	count, _ = usage.DailyUsage("user")
	assert.Equal(t, 1, count)
}

func TestGate_ProcessSkipsActionWhenDenied(t *testing.T) {
	gate, _, _ := newTestGate(t, nil)

	called := false
	for i := 0; i < config.DefaultDailyLimit; i++ {
		require.NoError(t, gate.Confirm("user"))
	}
	d := gate.Process("user", "any", "123456789", "ind", func(Decision) bool {
		called = true
		return true
	})
	assert.Equal(t, DecisionQuotaExceeded, d.Code)
	assert.False(t, called)
}

// Concurrent evaluate+confirm pairs for the same user must not overshoot
// the limit.
func TestGate_ProcessSerializesPerUser(t *testing.T) {
	gate, _, usage := newTestGate(t, nil)

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			gate.Process("user", "any", "123456789", "ind", func(Decision) bool { return true })
		}()
	}
	wg.Wait()

	count, _ := usage.DailyUsage("user")
	assert.Equal(t, config.DefaultDailyLimit, count)
}

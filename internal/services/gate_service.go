package services

import (
	"sync"

	"likebot-api/internal/validator"
)

type DecisionCode string

const (
	DecisionChannelDenied DecisionCode = "CHANNEL_DENIED"
	DecisionMissingParams DecisionCode = "MISSING_PARAMS"
	DecisionInvalidUID    DecisionCode = "INVALID_UID"
	DecisionInvalidRegion DecisionCode = "INVALID_REGION"
	DecisionQuotaExceeded DecisionCode = "QUOTA_EXCEEDED"
	DecisionAllowed       DecisionCode = "ALLOWED"
)

// Decision is the outcome of gating one like request. UID and Region are
// only populated once validation has passed; Remaining is the count left
// after the pending use and is informational — nothing is consumed until
// Confirm.
type Decision struct {
	Code      DecisionCode
	UID       string
	Region    string
	Limit     int
	Remaining int
	Unlimited bool
}

// GateService decides whether a like request may proceed and records
// usage once the external call has succeeded. Evaluate-then-Confirm for a
// given user is serialized so parallel requests cannot slip past the
// daily limit between the check and the record.
type GateService interface {
	// Evaluate runs the full validation/policy/quota chain without
	// consuming anything.
	Evaluate(userID, channelID, rawUID, rawRegion string) Decision
	// Confirm records one successful external action for the user.
	Confirm(userID string) error
	// Process holds the user's gate lock across the whole
	// evaluate → external call → confirm sequence. The action callback
	// performs the external call and returns true only on confirmed
	// success.
	Process(userID, channelID, rawUID, rawRegion string, action func(Decision) bool) Decision
}

type gateService struct {
	policy PolicyService
	usage  UsageService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGateService(policy PolicyService, usage UsageService) GateService {
	return &gateService{
		policy: policy,
		usage:  usage,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (g *gateService) Evaluate(userID, channelID, rawUID, rawRegion string) Decision {
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return g.evaluate(userID, channelID, rawUID, rawRegion)
}

func (g *gateService) Confirm(userID string) error {
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return g.usage.RecordSuccess(userID)
}

func (g *gateService) Process(userID, channelID, rawUID, rawRegion string, action func(Decision) bool) Decision {
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	decision := g.evaluate(userID, channelID, rawUID, rawRegion)
	if decision.Code != DecisionAllowed {
		return decision
	}
	if action != nil && action(decision) {
		// A returned error means the persist failed; the in-memory
		// count is still correct.
		_ = g.usage.RecordSuccess(userID)
	}
	return decision
}

// evaluate applies the checks in a fixed order; the first failure wins
// because the caller's messaging depends on which check tripped.
func (g *gateService) evaluate(userID, channelID, rawUID, rawRegion string) Decision {
	if !g.policy.IsChannelAllowed(channelID) {
		return Decision{Code: DecisionChannelDenied}
	}

	rawRegion, rawUID = validator.DisambiguateArgs(rawRegion, rawUID)
	if rawUID == "" || rawRegion == "" {
		return Decision{Code: DecisionMissingParams}
	}

	if !validator.ValidUID(rawUID) {
		return Decision{Code: DecisionInvalidUID}
	}
	if !validator.ValidRegion(rawRegion) {
		return Decision{Code: DecisionInvalidRegion}
	}

	uid := validator.CleanUID(rawUID)
	region := validator.CanonicalRegion(rawRegion)

	if g.policy.IsUnlimited(userID) || g.policy.IsAdmin(userID) {
		return Decision{
			Code:      DecisionAllowed,
			UID:       uid,
			Region:    region,
			Unlimited: true,
		}
	}

	limit := g.policy.DailyLimitFor(userID)
	if !g.usage.UnderLimit(userID, limit) {
		return Decision{Code: DecisionQuotaExceeded, Limit: limit}
	}

	return Decision{
		Code:      DecisionAllowed,
		UID:       uid,
		Region:    region,
		Limit:     limit,
		Remaining: g.usage.Remaining(userID, limit) - 1,
	}
}

func (g *gateService) userLock(userID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[userID] = lock
	}
	return lock
}

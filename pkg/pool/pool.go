// Package pool implements the bounded collateral pool backing agent trust
// allocations. All operations are copy-on-write: they return a new pool
// value and leave the input untouched. The pool invariant
// 0 <= allocatedTrust <= totalCollateral holds after every operation.
package pool

import (
	"time"

	"github.com/covenantos/trustcore/pkg/observability"
)

// Pool tracks total collateral and per-agent trust allocations.
type Pool struct {
	TotalCollateral float64            `json:"total_collateral"`
	AllocatedTrust  float64            `json:"allocated_trust"`
	Participants    map[string]float64 `json:"participants"`
}

// New creates an empty pool over the given collateral.
func New(totalCollateral float64) Pool {
	return Pool{
		TotalCollateral: totalCollateral,
		Participants:    map[string]float64{},
	}
}

// AvailableTrust is the collateral not yet allocated.
func (p Pool) AvailableTrust() float64 {
	return p.TotalCollateral - p.AllocatedTrust
}

// UtilizationRatio is allocated trust over total collateral, 0 for an empty
// pool.
func (p Pool) UtilizationRatio() float64 {
	if p.TotalCollateral == 0 {
		return 0
	}
	return p.AllocatedTrust / p.TotalCollateral
}

// CollateralizationRatio equals the utilization ratio; it stays within
// [0, 1] under the allocation discipline below.
func (p Pool) CollateralizationRatio() float64 {
	if p.TotalCollateral <= 0 {
		return 0
	}
	return p.AllocatedTrust / p.TotalCollateral
}

func (p Pool) cloneParticipants() map[string]float64 {
	clone := make(map[string]float64, len(p.Participants))
	for k, v := range p.Participants {
		clone[k] = v
	}
	return clone
}

// AllocationResult reports whether an allocation was applied and carries the
// resulting pool. On rejection the pool is the input, unchanged.
type AllocationResult struct {
	Allocated bool   `json:"allocated"`
	Reason    string `json:"reason"`
	Pool      Pool   `json:"pool"`
}

// AllocateTrust reserves collateral for an agent. Rejected when the amount
// is non-positive or exceeds the available trust.
func AllocateTrust(p Pool, agentID string, amount float64) AllocationResult {
	if amount <= 0 {
		return AllocationResult{Reason: "Allocation amount must be positive", Pool: p}
	}
	if amount > p.AvailableTrust() {
		return AllocationResult{Reason: "Insufficient available trust", Pool: p}
	}
	next := p
	next.Participants = p.cloneParticipants()
	next.Participants[agentID] += amount
	next.AllocatedTrust += amount
	observability.RecordTrustAllocated(amount)
	return AllocationResult{Allocated: true, Reason: "Allocation successful", Pool: next}
}

// ReleaseTrust returns allocated collateral to the pool. The release is
// capped at the agent's current allocation; an unknown agent leaves the pool
// unchanged.
func ReleaseTrust(p Pool, agentID string, amount float64) Pool {
	current, ok := p.Participants[agentID]
	if !ok || amount <= 0 {
		return p
	}
	if amount > current {
		amount = current
	}
	next := p
	next.Participants = p.cloneParticipants()
	next.AllocatedTrust -= amount
	if current-amount <= 0 {
		delete(next.Participants, agentID)
	} else {
		next.Participants[agentID] = current - amount
	}
	return next
}

// SlashEvent describes a slash against an agent's allocation.
type SlashEvent struct {
	AgentID       string    `json:"agent_id"`
	Amount        float64   `json:"amount"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
	Redistributed bool      `json:"redistributed"`
}

// SlashStake removes up to the agent's current allocation. When the slashed
// amount is redistributed it becomes available trust again; otherwise the
// collateral is destroyed with it.
func SlashStake(p Pool, event SlashEvent) Pool {
	current, ok := p.Participants[event.AgentID]
	if !ok {
		return p
	}
	slash := event.Amount
	if slash > current {
		slash = current
	}
	if slash <= 0 {
		return p
	}
	next := p
	next.Participants = p.cloneParticipants()
	next.AllocatedTrust -= slash
	if current-slash <= 0 {
		delete(next.Participants, event.AgentID)
	} else {
		next.Participants[event.AgentID] = current - slash
	}
	if !event.Redistributed {
		next.TotalCollateral -= slash
	}
	observability.RecordTrustSlashed(slash)
	observability.Logger().Info("stake slashed",
		"agent_id", event.AgentID,
		"amount", slash,
		"redistributed", event.Redistributed,
		"reason", event.Reason)
	return next
}

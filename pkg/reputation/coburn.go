package reputation

import (
	"github.com/covenantos/trustcore/pkg/stake"
)

// CoBurn is the outcome of burning a delegation jointly with its sponsor's
// reputation.
type CoBurn struct {
	Delegation            stake.Delegation `json:"delegation"`
	SponsorReputationLoss float64          `json:"sponsor_reputation_loss"`
	NewSponsorBurned      float64          `json:"new_sponsor_burned"`
}

// CoBurnDelegation burns the delegation and charges the sponsor a
// reputation loss proportional to how much they vouched and how much
// reputation they currently hold. The sponsor's score record is not
// modified; the updated burn total is returned.
func CoBurnDelegation(d stake.Delegation, sponsor Score) (CoBurn, error) {
	burned, err := stake.BurnDelegation(d)
	if err != nil {
		return CoBurn{}, err
	}
	loss := d.RiskAmount * sponsor.WeightedScore
	return CoBurn{
		Delegation:            burned,
		SponsorReputationLoss: loss,
		NewSponsorBurned:      sponsor.TotalBurned + loss,
	}, nil
}

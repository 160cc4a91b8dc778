package sales

import "fmt"

// returnCountThreshold is the number of previous RTOs at which a customer
// is considered high risk
const returnCountThreshold = 2

// RiskAssessment is the outcome of scoring a customer phone number
type RiskAssessment struct {
	IsHighRisk bool   `json:"is_high_risk"`
	Reason     string `json:"reason,omitempty"`
}

// AssessRisk scores a customer from the current blacklist and khata state.
// It is a pure function: blacklist first, then return history, first match
// wins.
func AssessRisk(blacklisted bool, returnCount int) RiskAssessment {
	if blacklisted {
		return RiskAssessment{IsHighRisk: true, Reason: "Phone number is blacklisted"}
	}
	if returnCount >= returnCountThreshold {
		return RiskAssessment{IsHighRisk: true, Reason: fmt.Sprintf("%d previous returns", returnCount)}
	}
	return RiskAssessment{}
}

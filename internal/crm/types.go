package crm

import "strings"

// Status enumerates the qualification states a lead can be in.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
)

// Statuses lists all valid lead statuses in display order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified:
		return true
	}
	return false
}

// ParseStatus matches a string against the known statuses, ignoring case.
// The second return value is false for unknown values.
func ParseStatus(value string) (Status, bool) {
	trimmed := strings.TrimSpace(value)
	for _, s := range Statuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Stage enumerates opportunity pipeline positions. Conversion always starts an
// opportunity at Prospecting; no other transition exists in this system.
type Stage string

const (
	StageProspecting   Stage = "Prospecting"
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// Lead is a prospective contact. Leads are created once from the external
// source and replaced wholesale on edit or conversion; they are never deleted.
type Lead struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
	Status  Status `json:"status"`
}

// Opportunity is a pipeline entry produced by converting a lead. Amount is
// fixed at creation and never edited. LeadID is an audit back-reference only.
type Opportunity struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Stage       Stage  `json:"stage"`
	Amount      int    `json:"amount,omitempty"`
	AccountName string `json:"accountName"`
	LeadID      int    `json:"leadId,omitempty"`
}

// SumAmounts totals opportunity amounts; an absent amount contributes zero.
func SumAmounts(opps []Opportunity) int {
	total := 0
	for _, o := range opps {
		total += o.Amount
	}
	return total
}

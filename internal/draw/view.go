package draw

import "github.com/xtding233/gacha-backend/internal/gacha"

// OutcomeView is the wire form of one outcome.
type OutcomeView struct {
	Tier    string `json:"tier"`
	Item    string `json:"item"`
	Premium string `json:"premium,omitempty"`
	Label   string `json:"label"`
}

// View is the wire form of a Result, shared by the HTTP and gRPC APIs.
type View struct {
	Outcomes         []OutcomeView `json:"outcomes"`
	Message          string        `json:"message,omitempty"`
	DrawCount        int           `json:"drawCount"`
	TotalSpend       int           `json:"totalSpend"`
	PremiumRemaining []string      `json:"premiumRemaining"`
	PremiumCollected []string      `json:"premiumCollected"`
}

func (r Result) View() View {
	v := View{
		Outcomes:         make([]OutcomeView, 0, len(r.Outcomes)),
		Message:          r.Message,
		DrawCount:        r.DrawCount,
		TotalSpend:       r.TotalSpend,
		PremiumRemaining: nonNil(r.Remaining),
		PremiumCollected: nonNil(r.Collected),
	}
	for _, o := range r.Outcomes {
		v.Outcomes = append(v.Outcomes, outcomeView(o))
	}
	return v
}

func outcomeView(o gacha.Outcome) OutcomeView {
	return OutcomeView{Tier: string(o.Tier), Item: o.Item, Premium: o.Premium, Label: o.Label()}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

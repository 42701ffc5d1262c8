package access

import (
	"github.com/cognicore/dailyline/pkg/dailyline/insights"
)

// CardView is one report card as a given user may see it. Card is nil
// unless State is enabled.
type CardView struct {
	Name    string        `json:"name"`
	Feature Feature       `json:"feature"`
	State   State         `json:"state"`
	Card    insights.Card `json:"card,omitempty"`
}

// View is a report filtered by access policy.
type View struct {
	Cards []CardView `json:"cards"`
}

// Apply gates every card of report under ctx. Hidden cards are listed with
// their state so callers can tell them apart from missing ones.
func Apply(report insights.Report, ctx Context) View {
	named := report.Cards()
	view := View{Cards: make([]CardView, 0, len(named))}
	for _, nc := range named {
		feature := CardFeature(nc.Name)
		cv := CardView{
			Name:    nc.Name,
			Feature: feature,
			State:   For(feature, ctx),
		}
		if cv.State == StateEnabled {
			cv.Card = nc.Card
		}
		view.Cards = append(view.Cards, cv)
	}
	return view
}

// Enabled returns the views whose card is visible.
func (v View) Enabled() []CardView {
	var out []CardView
	for _, cv := range v.Cards {
		if cv.State == StateEnabled {
			out = append(out, cv)
		}
	}
	return out
}

package access

import (
	"errors"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/insights"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

func TestFor(t *testing.T) {
	free := Context{Entitlement: EntitlementFree, AIInsightsEnabled: true}
	freeNoAI := Context{Entitlement: EntitlementFree}
	premium := Context{Entitlement: EntitlementPremium, AIInsightsEnabled: true}
	premiumNoAI := Context{Entitlement: EntitlementPremium}
	unknownPremium := Context{Entitlement: EntitlementUnknown, AIInsightsEnabled: true, LastKnown: EntitlementPremium}
	unknown := Context{Entitlement: EntitlementUnknown, AIInsightsEnabled: true}

	tests := []struct {
		name    string
		feature Feature
		ctx     Context
		want    State
	}{
		{"core write free", FeatureTodayWrite, freeNoAI, StateEnabled},
		{"core read free", FeatureHistoryRead, freeNoAI, StateEnabled},
		{"core search free", FeatureHistorySearch, freeNoAI, StateEnabled},
		{"core insights free", FeatureInsightsCore, freeNoAI, StateEnabled},
		{"ai locked for free", CardFeature(insights.CardSentimentTimeline), free, StateLocked},
		{"restore hidden for free", FeatureRestorePurchase, free, StateHidden},
		{"ads shown for free", FeatureAdsDisplay, free, StateEnabled},
		{"ai enabled for premium", CardFeature(insights.CardThemeMining), premium, StateEnabled},
		{"restore enabled for premium", FeatureRestorePurchase, premium, StateEnabled},
		{"ads hidden for premium", FeatureAdsDisplay, premium, StateHidden},
		{"ai hidden when disabled", CardFeature(insights.CardComparePeriods), premiumNoAI, StateHidden},
		{"core with ai disabled", FeatureInsightsCore, premiumNoAI, StateEnabled},
		{"unknown locks ai", CardFeature(insights.CardEarlyWarning), unknownPremium, StateLocked},
		{"unknown hides restore", FeatureRestorePurchase, unknownPremium, StateHidden},
		{"unknown uses last known for ads", FeatureAdsDisplay, unknownPremium, StateHidden},
		{"unknown without last known shows ads", FeatureAdsDisplay, unknown, StateEnabled},
		{"unrecognized feature", Feature("labs.experiment"), premium, StateHidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := For(tt.feature, tt.ctx); got != tt.want {
				t.Errorf("For(%q, %+v) = %s, want %s", tt.feature, tt.ctx, got, tt.want)
			}
		})
	}

	if !Enabled(CardFeature(insights.CardWeeklyReflection), premium) {
		t.Error("weekly reflection should be enabled for premium")
	}
}

func TestFeatures(t *testing.T) {
	features := Features()
	if len(features) != 4+len(insights.CardNames)+2 {
		t.Fatalf("Features() = %d, want %d", len(features), 4+len(insights.CardNames)+2)
	}
	if features[4] != "insights.ai.sentimentTimeline" {
		t.Errorf("first AI feature = %s", features[4])
	}
}

func TestEntitlementState(t *testing.T) {
	def := DefaultEntitlementState()
	if def.Status != EntitlementFree || def.LastKnownStatus != EntitlementFree || def.LastCheckedAt != nil {
		t.Errorf("DefaultEntitlementState() = %+v", def)
	}
	if def.Effective() != EntitlementFree {
		t.Errorf("default Effective() = %s, want free", def.Effective())
	}

	premium := EntitlementState{Status: EntitlementPremium, LastKnownStatus: EntitlementPremium}
	offline := premium.Next(EntitlementUnknown, "2026-02-08T01:00:00.000Z")
	if offline.Status != EntitlementUnknown || offline.LastKnownStatus != EntitlementPremium {
		t.Errorf("Next(unknown) = %+v, want last known premium", offline)
	}
	if offline.LastCheckedAt == nil || *offline.LastCheckedAt != "2026-02-08T01:00:00.000Z" {
		t.Errorf("LastCheckedAt = %v", offline.LastCheckedAt)
	}
	if offline.Effective() != EntitlementPremium {
		t.Errorf("Effective() = %s, want premium", offline.Effective())
	}

	downgraded := offline.Next(EntitlementFree, "2026-02-08T02:00:00.000Z")
	if downgraded.LastKnownStatus != EntitlementFree {
		t.Errorf("Next(free).LastKnownStatus = %s, want free", downgraded.LastKnownStatus)
	}
}

func TestParseEntitlement(t *testing.T) {
	for _, s := range []string{"free", "premium", "unknown"} {
		if _, err := ParseEntitlement(s); err != nil {
			t.Errorf("ParseEntitlement(%q) error: %v", s, err)
		}
	}
	if _, err := ParseEntitlement("gold"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("ParseEntitlement(gold) = %v, want ErrInvalidInput", err)
	}
}

func TestShowAds(t *testing.T) {
	tests := []struct {
		state EntitlementState
		want  bool
	}{
		{DefaultEntitlementState(), true},
		{EntitlementState{Status: EntitlementPremium, LastKnownStatus: EntitlementPremium}, false},
		{EntitlementState{Status: EntitlementUnknown, LastKnownStatus: EntitlementPremium}, false},
		{EntitlementState{Status: EntitlementUnknown, LastKnownStatus: EntitlementFree}, true},
	}
	for _, tt := range tests {
		if got := ShowAds(tt.state); got != tt.want {
			t.Errorf("ShowAds(%+v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	report := insights.Build(nil, "2026-02-08")

	free := Apply(report, Context{Entitlement: EntitlementFree, AIInsightsEnabled: true})
	if len(free.Cards) != len(insights.CardNames) {
		t.Fatalf("Apply listed %d cards, want %d", len(free.Cards), len(insights.CardNames))
	}
	for _, cv := range free.Cards {
		if cv.State != StateLocked || cv.Card != nil {
			t.Errorf("free card %s = %s with payload %v, want locked and empty", cv.Name, cv.State, cv.Card)
		}
	}
	if len(free.Enabled()) != 0 {
		t.Errorf("free Enabled() = %d, want 0", len(free.Enabled()))
	}

	premium := Apply(report, Context{Entitlement: EntitlementPremium, AIInsightsEnabled: true})
	if len(premium.Enabled()) != len(insights.CardNames) {
		t.Errorf("premium Enabled() = %d, want %d", len(premium.Enabled()), len(insights.CardNames))
	}
	for i, cv := range premium.Cards {
		if cv.Name != insights.CardNames[i] {
			t.Errorf("card %d = %s, want %s", i, cv.Name, insights.CardNames[i])
		}
		if cv.Card == nil || cv.Card.CardStatus() != insights.StatusInsufficient {
			t.Errorf("premium card %s payload = %v", cv.Name, cv.Card)
		}
	}
}

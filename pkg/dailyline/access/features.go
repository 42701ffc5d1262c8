package access

import (
	"github.com/cognicore/dailyline/pkg/dailyline/insights"
)

// Feature identifies a gated capability.
type Feature string

const (
	FeatureTodayWrite      Feature = "journal.today.write"
	FeatureHistoryRead     Feature = "journal.history.read"
	FeatureHistorySearch   Feature = "journal.history.search"
	FeatureInsightsCore    Feature = "insights.core"
	FeatureRestorePurchase Feature = "settings.restorePurchase"
	FeatureAdsDisplay      Feature = "ads.display"
)

// aiFeaturePrefix namespaces the per-card AI insight features.
const aiFeaturePrefix = "insights.ai."

// State is the visibility of a feature.
type State string

const (
	StateEnabled State = "enabled"
	StateLocked  State = "locked"
	StateHidden  State = "hidden"
)

// Context is what access decisions depend on.
type Context struct {
	Entitlement       Entitlement
	AIInsightsEnabled bool
	// LastKnown is consulted for ads while Entitlement is unknown. Empty
	// means free.
	LastKnown Entitlement
}

// ContextFrom builds a Context from a persisted entitlement state.
func ContextFrom(state EntitlementState, aiInsightsEnabled bool) Context {
	return Context{
		Entitlement:       state.Status,
		AIInsightsEnabled: aiInsightsEnabled,
		LastKnown:         state.LastKnownStatus,
	}
}

var coreFeatures = map[Feature]bool{
	FeatureTodayWrite:    true,
	FeatureHistoryRead:   true,
	FeatureHistorySearch: true,
	FeatureInsightsCore:  true,
}

var aiFeatures = func() map[Feature]bool {
	m := make(map[Feature]bool, len(insights.CardNames))
	for _, name := range insights.CardNames {
		m[CardFeature(name)] = true
	}
	return m
}()

// CardFeature returns the feature that gates the named report card.
func CardFeature(card string) Feature {
	return Feature(aiFeaturePrefix + card)
}

// Features lists every known feature.
func Features() []Feature {
	out := []Feature{FeatureTodayWrite, FeatureHistoryRead, FeatureHistorySearch, FeatureInsightsCore}
	for _, name := range insights.CardNames {
		out = append(out, CardFeature(name))
	}
	return append(out, FeatureRestorePurchase, FeatureAdsDisplay)
}

// premiumGate treats anything but a confirmed premium status as free.
func premiumGate(e Entitlement) bool {
	return e == EntitlementPremium
}

// For returns the access state of feature under ctx. Unknown features are
// hidden.
func For(feature Feature, ctx Context) State {
	switch {
	case coreFeatures[feature]:
		return StateEnabled
	case aiFeatures[feature]:
		if !premiumGate(ctx.Entitlement) {
			return StateLocked
		}
		if !ctx.AIInsightsEnabled {
			return StateHidden
		}
		return StateEnabled
	case feature == FeatureRestorePurchase:
		if premiumGate(ctx.Entitlement) {
			return StateEnabled
		}
		return StateHidden
	case feature == FeatureAdsDisplay:
		if adsEntitlement(ctx) == EntitlementPremium {
			return StateHidden
		}
		return StateEnabled
	}
	return StateHidden
}

// Enabled reports whether feature is enabled under ctx.
func Enabled(feature Feature, ctx Context) bool {
	return For(feature, ctx) == StateEnabled
}

func adsEntitlement(ctx Context) Entitlement {
	if ctx.Entitlement != EntitlementUnknown {
		return ctx.Entitlement
	}
	if ctx.LastKnown == "" {
		return EntitlementFree
	}
	return ctx.LastKnown
}

// ShowAds reports whether ads are shown for a persisted entitlement state.
func ShowAds(state EntitlementState) bool {
	return Enabled(FeatureAdsDisplay, ContextFrom(state, true))
}

// Package entitlement maps subscription tiers to the features they unlock.
// The table is static and read-only after process start; lookups are pure.
package entitlement

import (
	"kaspalytics/internal/domain"
)

// featureTiers enumerates the tiers allowed to use each feature. Features
// absent from the table are denied to every tier; because domain.Feature is
// a closed enumeration that cannot happen for valid inputs.
var featureTiers = map[domain.Feature][]domain.Tier{
	domain.FeatureBasicCharts:      {domain.TierPublic, domain.TierFree, domain.TierPremium, domain.TierPro},
	domain.FeaturePowerLawBasic:    {domain.TierFree, domain.TierPremium, domain.TierPro},
	domain.FeatureAdvancedCharts:   {domain.TierPremium, domain.TierPro},
	domain.FeaturePowerLawAdvanced: {domain.TierPremium, domain.TierPro},
	domain.FeatureNetworkMetrics:   {domain.TierPremium, domain.TierPro},
	domain.FeatureDataExport:       {domain.TierPremium, domain.TierPro},
	domain.FeatureAPIAccess:        {domain.TierPro},
	domain.FeatureCustomModels:     {domain.TierPro},
	domain.FeatureAdminPanel:       {domain.TierPro},
}

// historyWindowHours caps how much hourly history each tier may see.
// Zero means unlimited.
var historyWindowHours = map[domain.Tier]int{
	domain.TierPublic:  7 * 24,
	domain.TierFree:    30 * 24,
	domain.TierPremium: 0,
	domain.TierPro:     0,
}

// apiRequestsPerMinute is the per-tier API request budget. The pro tier's
// "full" access is a generous bucket rather than no bucket at all.
var apiRequestsPerMinute = map[domain.Tier]int{
	domain.TierPublic:  30,
	domain.TierFree:    60,
	domain.TierPremium: 120,
	domain.TierPro:     600,
}

// Allowed reports whether tier may use feature. The admin panel additionally
// requires a specific admin identity; see AllowedForUser.
func Allowed(feature domain.Feature, tier domain.Tier) bool {
	for _, t := range featureTiers[feature] {
		if t == tier {
			return true
		}
	}
	return false
}

// AllowedForUser applies the tier table plus the admin-identity restriction
// on the admin panel.
func AllowedForUser(feature domain.Feature, tier domain.Tier, username, adminUsername string) bool {
	if !Allowed(feature, tier) {
		return false
	}
	if feature == domain.FeatureAdminPanel {
		return adminUsername != "" && username == adminUsername
	}
	return true
}

// HistoryWindow returns the number of trailing hourly points visible to a
// tier, or 0 for unlimited history.
func HistoryWindow(tier domain.Tier) int {
	return historyWindowHours[tier]
}

// RequestsPerMinute returns the API rate budget for a tier.
func RequestsPerMinute(tier domain.Tier) int {
	if n, ok := apiRequestsPerMinute[tier]; ok {
		return n
	}
	return apiRequestsPerMinute[domain.TierPublic]
}

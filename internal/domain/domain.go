package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientData is returned when an analytics computation does not have
// enough input points to produce a meaningful result. Callers must check for
// it explicitly; the calculators never fabricate partial output.
var ErrInsufficientData = errors.New("insufficient data")

// Tier is a closed enumeration of subscription levels. Unknown strings are
// rejected at parse time rather than silently defaulting.
type Tier string

const (
	TierPublic  Tier = "public"
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// Tiers lists all subscription tiers in ascending order of access.
var Tiers = []Tier{TierPublic, TierFree, TierPremium, TierPro}

// AccountTiers lists the tiers an account row can hold. Public is the
// anonymous tier and never stored.
var AccountTiers = []Tier{TierFree, TierPremium, TierPro}

func (t Tier) IsValid() bool {
	switch t {
	case TierPublic, TierFree, TierPremium, TierPro:
		return true
	}
	return false
}

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown tier: %q", s)
	}
	return t, nil
}

// Feature is a closed enumeration of gated product features.
type Feature string

const (
	FeatureBasicCharts      Feature = "basic_charts"
	FeatureAdvancedCharts   Feature = "advanced_charts"
	FeaturePowerLawBasic    Feature = "power_law_basic"
	FeaturePowerLawAdvanced Feature = "power_law_advanced"
	FeatureNetworkMetrics   Feature = "network_metrics"
	FeatureDataExport       Feature = "data_export"
	FeatureAPIAccess        Feature = "api_access"
	FeatureCustomModels     Feature = "custom_models"
	FeatureAdminPanel       Feature = "admin_panel"
)

// Features lists all gated features.
var Features = []Feature{
	FeatureBasicCharts,
	FeatureAdvancedCharts,
	FeaturePowerLawBasic,
	FeaturePowerLawAdvanced,
	FeatureNetworkMetrics,
	FeatureDataExport,
	FeatureAPIAccess,
	FeatureCustomModels,
	FeatureAdminPanel,
}

func (f Feature) IsValid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown feature: %q", s)
	}
	return f, nil
}

// User is an account record. PasswordHash is a bcrypt hash and never leaves
// the repository/auth layer.
type User struct {
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	PasswordHash        string    `json:"-"`
	Tier                Tier      `json:"tier"`
	FailedLoginAttempts int       `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
}

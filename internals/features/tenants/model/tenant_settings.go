package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

/* =========================================================
   Typed settings record, serialized only at the persistence
   boundary. Each sub-object merges independently on update.
========================================================= */

type BrandingSettings struct {
	PrimaryColor *string `json:"primaryColor,omitempty"`
	Logo         *string `json:"logo,omitempty"`
	Favicon      *string `json:"favicon,omitempty"`
}

type FeatureSettings struct {
	CustomDomain *bool `json:"customDomain,omitempty"`
	Analytics    *bool `json:"analytics,omitempty"`
	Affiliates   *bool `json:"affiliates,omitempty"`
}

type PaymentSettings struct {
	StripePublishableKey *string `json:"stripePublishableKey,omitempty"`
	Currency             *string `json:"currency,omitempty"`
}

type TenantSettings struct {
	Branding BrandingSettings `json:"branding"`
	Features FeatureSettings  `json:"features"`
	Payment  PaymentSettings  `json:"payment"`
}

// DefaultSettings builds plan-dependent defaults: custom domain above free,
// affiliates on pro only.
func DefaultSettings(plan string) TenantSettings {
	primary := "#3B82F6"
	customDomain := plan != PlanFree
	analytics := true
	affiliates := plan == PlanPro
	currency := "USD"
	return TenantSettings{
		Branding: BrandingSettings{PrimaryColor: &primary},
		Features: FeatureSettings{
			CustomDomain: &customDomain,
			Analytics:    &analytics,
			Affiliates:   &affiliates,
		},
		Payment: PaymentSettings{Currency: &currency},
	}
}

// Merge applies a deep-partial patch: each sub-object is merged field by
// field, never replaced wholesale.
func (s TenantSettings) Merge(patch *TenantSettings) TenantSettings {
	if patch == nil {
		return s
	}
	out := s

	if patch.Branding.PrimaryColor != nil {
		out.Branding.PrimaryColor = patch.Branding.PrimaryColor
	}
	if patch.Branding.Logo != nil {
		out.Branding.Logo = patch.Branding.Logo
	}
	if patch.Branding.Favicon != nil {
		out.Branding.Favicon = patch.Branding.Favicon
	}

	if patch.Features.CustomDomain != nil {
		out.Features.CustomDomain = patch.Features.CustomDomain
	}
	if patch.Features.Analytics != nil {
		out.Features.Analytics = patch.Features.Analytics
	}
	if patch.Features.Affiliates != nil {
		out.Features.Affiliates = patch.Features.Affiliates
	}

	if patch.Payment.StripePublishableKey != nil {
		out.Payment.StripePublishableKey = patch.Payment.StripePublishableKey
	}
	if patch.Payment.Currency != nil {
		out.Payment.Currency = patch.Payment.Currency
	}

	return out
}

func (s TenantSettings) Encode() (datatypes.JSON, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func DecodeSettings(raw datatypes.JSON) (TenantSettings, error) {
	var s TenantSettings
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return TenantSettings{}, err
	}
	return s, nil
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsPlanGating(t *testing.T) {
	free := DefaultSettings(PlanFree)
	require.NotNil(t, free.Branding.PrimaryColor)
	assert.Equal(t, "#3B82F6", *free.Branding.PrimaryColor)
	assert.False(t, *free.Features.CustomDomain)
	assert.True(t, *free.Features.Analytics)
	assert.False(t, *free.Features.Affiliates)
	assert.Equal(t, "USD", *free.Payment.Currency)

	basic := DefaultSettings(PlanBasic)
	assert.True(t, *basic.Features.CustomDomain)
	assert.False(t, *basic.Features.Affiliates)

	pro := DefaultSettings(PlanPro)
	assert.True(t, *pro.Features.CustomDomain)
	assert.True(t, *pro.Features.Affiliates)
}

func TestMergeUpdatesOnlyPatchedFields(t *testing.T) {
	current := DefaultSettings(PlanFree)

	color := "#FF0000"
	merged := current.Merge(&TenantSettings{
		Branding: BrandingSettings{PrimaryColor: &color},
	})

	assert.Equal(t, "#FF0000", *merged.Branding.PrimaryColor)
	// untouched sub-objects keep their values
	require.NotNil(t, merged.Features.Analytics)
	assert.True(t, *merged.Features.Analytics)
	assert.Equal(t, "USD", *merged.Payment.Currency)
}

func TestMergeWithinSubObject(t *testing.T) {
	current := DefaultSettings(PlanPro)

	logo := "https://cdn.example.com/logo.png"
	merged := current.Merge(&TenantSettings{
		Branding: BrandingSettings{Logo: &logo},
	})

	assert.Equal(t, logo, *merged.Branding.Logo)
	// sibling field in the same sub-object survives
	assert.Equal(t, "#3B82F6", *merged.Branding.PrimaryColor)
}

func TestMergeNilPatchIsIdentity(t *testing.T) {
	current := DefaultSettings(PlanBasic)
	merged := current.Merge(nil)
	assert.Equal(t, current, merged)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := DefaultSettings(PlanPro)
	raw, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeSettings(raw)
	require.NoError(t, err)
	assert.Equal(t, *original.Branding.PrimaryColor, *decoded.Branding.PrimaryColor)
	assert.Equal(t, *original.Features.Affiliates, *decoded.Features.Affiliates)
}

func TestDecodeSettingsEmpty(t *testing.T) {
	decoded, err := DecodeSettings(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded.Branding.PrimaryColor)
}

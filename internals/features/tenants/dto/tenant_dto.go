// file: internals/features/tenants/dto/tenant_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"teacha_backend/internals/features/tenants/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type TenantSignupRequest struct {
	// Tenant details
	TenantName string  `json:"tenant_name" validate:"required,min=1,max=100"`
	TenantSlug string  `json:"tenant_slug" validate:"required,min=3,max=50"`
	Domain     *string `json:"domain,omitempty" validate:"omitempty,url"`

	// Owner user details
	OwnerName  string `json:"owner_name" validate:"required,min=1,max=100"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`

	// Plan selection
	Plan string `json:"plan" validate:"omitempty,oneof=free basic pro"`
}

type CheckSlugRequest struct {
	Slug string `json:"slug" validate:"required,min=3,max=50"`
}

// TenantUpdateRequest is a deep-partial patch: nil means "leave alone".
type TenantUpdateRequest struct {
	Name     *string        `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Domain   *string        `json:"domain,omitempty" validate:"omitempty,url"`
	Settings *SettingsPatch `json:"settings,omitempty"`
}

type SettingsPatch struct {
	Branding *model.BrandingSettings `json:"branding,omitempty"`
	Features *model.FeatureSettings  `json:"features,omitempty"`
	Payment  *model.PaymentSettings  `json:"payment,omitempty"`
}

// ToSettings lifts the patch into the typed settings record so that
// TenantSettings.Merge can be applied.
func (p *SettingsPatch) ToSettings() *model.TenantSettings {
	if p == nil {
		return nil
	}
	out := model.TenantSettings{}
	if p.Branding != nil {
		out.Branding = *p.Branding
	}
	if p.Features != nil {
		out.Features = *p.Features
	}
	if p.Payment != nil {
		out.Payment = *p.Payment
	}
	return &out
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TenantResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Slug      string                `json:"slug"`
	Domain    *string               `json:"domain,omitempty"`
	Plan      string                `json:"plan"`
	Status    string                `json:"status"`
	Settings  *model.TenantSettings `json:"settings,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type TenantStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalCourses     int `json:"totalCourses"`
	TotalStudents    int `json:"totalStudents"`
	PublishedCourses int `json:"publishedCourses"`
}

func FromModel(t *model.TenantModel, withSettings bool) TenantResponse {
	resp := TenantResponse{
		ID:        t.TenantID,
		Name:      t.TenantName,
		Slug:      t.TenantSlug,
		Domain:    t.TenantDomain,
		Plan:      t.TenantPlan,
		Status:    t.TenantStatus,
		CreatedAt: t.TenantCreatedAt,
		UpdatedAt: t.TenantUpdatedAt,
	}
	if withSettings {
		if s, err := model.DecodeSettings(t.TenantSettings); err == nil {
			resp.Settings = &s
		}
	}
	return resp
}

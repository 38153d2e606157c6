// file: internals/features/users/auth/dto/auth_dto.go
package dto

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	TenantID string  `json:"tenant_id" validate:"required,uuid"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN TENANT_OWNER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

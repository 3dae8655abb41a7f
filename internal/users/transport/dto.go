// Package transport defines request and response DTOs for user management.
package transport

// CreateUserRequest provisions a new account (admin only).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Role     string `json:"role" validate:"required,oneof=admin rep"`
}

// UpdateUserRequest changes role or active status.
type UpdateUserRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=2,max=120"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin rep"`
	IsActive *bool   `json:"isActive"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

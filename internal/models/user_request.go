package models

// CreateUserRequest is the public registration payload.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=120"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateUserRequest is a partial patch; nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,notblank,max=120"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	IsActive *bool   `json:"isActive"`
}

// Fields returns the patch keyed by column name.
func (r UpdateUserRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

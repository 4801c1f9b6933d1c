package model

import (
	"strings"
	"time"
)

// UserRole represents the role of a console user.
type UserRole string

const (
	// RoleAdmin has full access to every console area.
	RoleAdmin UserRole = "admin"
	// RoleAssistantAdmin sees the assistant area, gated by permissions.
	RoleAssistantAdmin UserRole = "assistant_admin"
	// RoleEmployee works at a center and has no console access.
	RoleEmployee UserRole = "employee"
)

// ParseRole normalizes a role string from the remote API.
// Unknown values map to RoleEmployee, the least privileged role.
func ParseRole(s string) UserRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "assistant_admin", "assistant-admin", "assistantadmin":
		return RoleAssistantAdmin
	default:
		return RoleEmployee
	}
}

// User is an employee or admin account as returned by /admin/users.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Role        UserRole   `json:"role"`
	EmployeeID  string     `json:"employeeId,omitempty"`
	CenterID    string     `json:"centerId,omitempty"`
	CenterName  string     `json:"centerName,omitempty"`
	LastLoginIP string     `json:"lastLoginIp,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	IsActive    bool       `json:"isActive"`
	IsOnline    bool       `json:"isOnline"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput is the payload for creating a user.
type UserInput struct {
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	EmployeeID string   `json:"employeeId,omitempty"`
	CenterID   *string  `json:"centerId"`
}

// Validate checks required fields. Employees must belong to a center;
// admins never carry one, so CenterID is cleared for them.
func (in *UserInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = RoleEmployee
	}

	var details []FieldError
	if in.Username == "" {
		details = append(details, FieldError{Field: "username", Message: "required"})
	}
	if in.Password == "" {
		details = append(details, FieldError{Field: "password", Message: "required"})
	}
	if in.FullName == "" {
		details = append(details, FieldError{Field: "fullName", Message: "required"})
	}
	if in.Email == "" {
		details = append(details, FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(in.Email, "@") {
		details = append(details, FieldError{Field: "email", Message: "invalid address"})
	}

	switch in.Role {
	case RoleAdmin:
		in.CenterID = nil
	case RoleEmployee:
		if in.CenterID == nil || strings.TrimSpace(*in.CenterID) == "" {
			details = append(details, FieldError{Field: "centerId", Message: "employees must be assigned to a center"})
		}
	default:
		details = append(details, FieldError{Field: "role", Message: "must be admin or employee"})
	}

	if len(details) > 0 {
		return NewValidationError("Invalid user", details...)
	}
	return nil
}

// AssistantAdmin is a restricted admin account with explicit permissions.
type AssistantAdmin struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	FullName    string       `json:"fullName"`
	Email       string       `json:"email"`
	Permissions []Permission `json:"permissions"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
}

// AssistantInput creates or updates an assistant admin. Password is only
// sent when set.
type AssistantInput struct {
	Username    string       `json:"username,omitempty"`
	Password    string       `json:"password,omitempty"`
	FullName    string       `json:"fullName,omitempty"`
	Email       string       `json:"email,omitempty"`
	Permissions []Permission `json:"permissions"`
	IsActive    *bool        `json:"isActive,omitempty"`
}

// ValidateCreate checks the fields required when creating an assistant.
func (in *AssistantInput) ValidateCreate() error {
	var details []FieldError
	if strings.TrimSpace(in.Username) == "" {
		details = append(details, FieldError{Field: "username", Message: "required"})
	}
	if in.Password == "" {
		details = append(details, FieldError{Field: "password", Message: "required"})
	}
	for _, p := range in.Permissions {
		if !p.Valid() {
			details = append(details, FieldError{Field: "permissions", Message: "unknown permission " + string(p)})
		}
	}
	if len(details) > 0 {
		return NewValidationError("Invalid assistant admin", details...)
	}
	return nil
}

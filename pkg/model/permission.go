package model

import (
	"slices"
	"strings"
)

// Permission is a capability granted to an assistant admin.
type Permission string

const (
	PermViewFinance   Permission = "view_finance"
	PermViewPayments  Permission = "view_payments"
	PermViewPolicies  Permission = "view_policies"
	PermViewVehicles  Permission = "view_vehicles"
	PermExportReports Permission = "export_reports"
)

// AllPermissions lists every known permission in display order.
var AllPermissions = []Permission{
	PermViewFinance,
	PermViewPayments,
	PermViewPolicies,
	PermViewVehicles,
	PermExportReports,
}

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	return slices.Contains(AllPermissions, p)
}

// PermissionSet is an immutable set of permissions built once per session.
type PermissionSet struct {
	set map[Permission]struct{}
}

// NewPermissionSet builds a set from a list, dropping unknown and
// duplicate entries.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := PermissionSet{set: make(map[Permission]struct{}, len(perms))}
	for _, p := range perms {
		p = Permission(strings.ToLower(strings.TrimSpace(string(p))))
		if p.Valid() {
			s.set[p] = struct{}{}
		}
	}
	return s
}

// ParsePermissions builds a set from raw strings, e.g. a comma separated
// form value or the remote API's permission array.
func ParsePermissions(raw []string) PermissionSet {
	var perms []Permission
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				perms = append(perms, Permission(part))
			}
		}
	}
	return NewPermissionSet(perms...)
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s.set[p]
	return ok
}

// HasAll reports whether every permission is in the set. An empty list
// is trivially satisfied.
func (s PermissionSet) HasAll(perms ...Permission) bool {
	for _, p := range perms {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one permission is in the set.
func (s PermissionSet) HasAny(perms ...Permission) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Len returns the number of permissions.
func (s PermissionSet) Len() int {
	return len(s.set)
}

// List returns the permissions in AllPermissions order.
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s.set))
	for _, p := range AllPermissions {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Strings returns the permissions as plain strings, for storage.
func (s PermissionSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = string(p)
	}
	return out
}

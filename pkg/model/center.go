package model

import (
	"net/netip"
	"strings"
	"time"
)

// Center is an insurance sales center.
type Center struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	IP        string     `json:"ip,omitempty"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Province  string     `json:"province,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CenterInput is the payload for creating or updating a center.
type CenterInput struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	IP      string `json:"ip,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Validate trims the input and checks the name and optional IPv4 address.
func (in *CenterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	in.IP = strings.TrimSpace(in.IP)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)

	var details []FieldError
	if in.Name == "" {
		details = append(details, FieldError{Field: "name", Message: "required"})
	}
	if in.IP != "" && !IsIPv4(in.IP) {
		details = append(details, FieldError{Field: "ip", Message: "must be an IPv4 address"})
	}
	if len(details) > 0 {
		return NewValidationError("Invalid center", details...)
	}
	return nil
}

// IsIPv4 reports whether s is a dotted-quad IPv4 address.
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

package apiclient

import (
	"context"
	"net/http"

	"github.com/me/insadmin/pkg/model"
)

// ListUsers returns every console user. The collection is client-paged.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	body, err := c.get(ctx, token, "users.list", "/admin/users", nil)
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, wireUser.model)
}

// CreateUser creates an employee or admin. Admins are sent with a null
// center.
func (c *Client) CreateUser(ctx context.Context, token string, in model.UserInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "users.create", http.MethodPost, "/admin/users", in)
	return err
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "users.delete", http.MethodDelete, "/admin/users/"+escape(id), nil)
	return err
}

// ListAssistants returns the assistant admins.
func (c *Client) ListAssistants(ctx context.Context, token string) ([]model.AssistantAdmin, error) {
	body, err := c.get(ctx, token, "assistants.list", "/admin/assistant-admins", nil)
	if err != nil {
		return nil, err
	}
	raw, _, err := decodeList(body)
	if err != nil {
		return nil, err
	}
	return decodeItems(raw, wireAssistant.model)
}

// CreateAssistant creates an assistant admin.
func (c *Client) CreateAssistant(ctx context.Context, token string, in model.AssistantInput) error {
	if err := in.ValidateCreate(); err != nil {
		return err
	}
	_, err := c.send(ctx, token, "assistants.create", http.MethodPost, "/admin/assistant-admins", in)
	return err
}

// UpdateAssistant updates permissions, the active flag or profile fields.
// Empty credential fields are left unchanged.
func (c *Client) UpdateAssistant(ctx context.Context, token, id string, in model.AssistantInput) error {
	for _, p := range in.Permissions {
		if !p.Valid() {
			return model.NewValidationError("Invalid assistant admin", model.FieldError{Field: "permissions", Message: "unknown permission " + string(p)})
		}
	}
	_, err := c.send(ctx, token, "assistants.update", http.MethodPut, "/admin/assistant-admins/"+escape(id), in)
	return err
}

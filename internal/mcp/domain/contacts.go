package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// ContactGetInput represents the MCP tool input for a contact detail read.
type ContactGetInput struct {
	ContactID int `json:"contact_id" jsonschema:"contact identifier"`
}

// ContactEntry represents one contact in MCP tool output.
type ContactEntry struct {
	ID        int    `json:"id" jsonschema:"contact identifier"`
	Name      string `json:"name" jsonschema:"first name, or company name for companies"`
	Lastname  string `json:"lastname,omitempty" jsonschema:"last name"`
	FullName  string `json:"full_name" jsonschema:"joined display name"`
	Email     string `json:"email,omitempty" jsonschema:"email address"`
	Phone     string `json:"phone,omitempty" jsonschema:"primary phone number"`
	Company   string `json:"company,omitempty" jsonschema:"company the contact belongs to"`
	Position  string `json:"position,omitempty" jsonschema:"job title"`
	IsCompany bool   `json:"is_company" jsonschema:"whether this record is a company"`
	CreatedAt string `json:"created_at,omitempty" jsonschema:"RFC3339 creation timestamp"`
}

// ContactGetResult represents the MCP tool output for a contact detail read.
type ContactGetResult struct {
	Contact ContactEntry `json:"contact" jsonschema:"contact detail"`
}

// ContactAddInput represents the MCP tool input for contact creation.
type ContactAddInput struct {
	Name           string `json:"name" jsonschema:"first name, or company name for companies"`
	Lastname       string `json:"lastname,omitempty" jsonschema:"last name"`
	Email          string `json:"email,omitempty" jsonschema:"email address"`
	Phone          string `json:"phone,omitempty" jsonschema:"phone number"`
	Position       string `json:"position,omitempty" jsonschema:"job title"`
	IsCompany      bool   `json:"is_company,omitempty" jsonschema:"create a company record instead of a person"`
	IdempotencyKey string `json:"idempotency_key,omitempty" jsonschema:"caller-supplied key making the create safe to retry"`
}

// ContactAddResult represents the MCP tool output for contact creation.
type ContactAddResult struct {
	Contact ContactEntry `json:"contact" jsonschema:"created contact as echoed by the server"`
}

// ContactGetTool defines the MCP tool schema for a contact detail read.
func ContactGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_contact_details",
		Description: "Fetches the full record of one contact or company",
	}
}

// ContactAddTool defines the MCP tool schema for contact creation.
func ContactAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_contact",
		Description: "Creates a contact or company record",
	}
}

func contactEntryFromDomain(contact planfix.Contact) ContactEntry {
	return ContactEntry{
		ID:        contact.ID,
		Name:      contact.Name,
		Lastname:  contact.Lastname,
		FullName:  contact.FullName(),
		Email:     contact.Email,
		Phone:     contact.Phone,
		Company:   contact.Company,
		Position:  contact.Position,
		IsCompany: contact.IsCompany,
		CreatedAt: formatTime(contact.CreatedAt),
	}
}

// ContactGetHandler executes a contact detail read.
func ContactGetHandler(api ContactAPI) mcp.ToolHandlerFor[ContactGetInput, ContactGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContactGetInput) (*mcp.CallToolResult, ContactGetResult, error) {
		invocationID := NewInvocationID()
		if input.ContactID <= 0 {
			return nil, ContactGetResult{}, fmt.Errorf("contact_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		contact, err := api.GetContactDetails(runCtx, input.ContactID)
		if err != nil {
			return nil, ContactGetResult{}, operationError("contact read", err)
		}
		return CallToolResultWithMetadata(invocationID), ContactGetResult{Contact: contactEntryFromDomain(contact)}, nil
	}
}

// ContactAddHandler executes a contact creation request.
func ContactAddHandler(api ContactAPI) mcp.ToolHandlerFor[ContactAddInput, ContactAddResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ContactAddInput) (*mcp.CallToolResult, ContactAddResult, error) {
		invocationID := NewInvocationID()
		if strings.TrimSpace(input.Name) == "" {
			return nil, ContactAddResult{}, fmt.Errorf("name is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		contact, err := api.AddContact(runCtx, planfix.ContactCreate{
			Name:           input.Name,
			Lastname:       input.Lastname,
			Email:          input.Email,
			Phone:          input.Phone,
			Position:       input.Position,
			IsCompany:      input.IsCompany,
			IdempotencyKey: input.IdempotencyKey,
		})
		if err != nil {
			return nil, ContactAddResult{}, operationError("contact create", err)
		}
		return CallToolResultWithMetadata(invocationID), ContactAddResult{Contact: contactEntryFromDomain(contact)}, nil
	}
}

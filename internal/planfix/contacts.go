package planfix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
)

const contactFields = "id,name,midname,lastname,email,phones,position,description,isCompany,createdDate"

// contactDetailFields is the full field set for single-contact reads.
const contactDetailFields = contactFields + ",address,site,companies,birthDate,dateOfLastUpdate"

type contactPayload struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Midname     string     `json:"midname"`
	Lastname    string     `json:"lastname"`
	Email       string     `json:"email"`
	Phones      []phoneRef `json:"phones"`
	Position    string     `json:"position"`
	Description string     `json:"description"`
	IsCompany   bool       `json:"isCompany"`
	Companies   []shortRef `json:"companies"`
	CreatedDate *timePoint `json:"createdDate"`
}

func (p contactPayload) toDomain() Contact {
	contact := Contact{
		ID:        p.ID,
		Name:      p.Name,
		Midname:   p.Midname,
		Lastname:  p.Lastname,
		Email:     p.Email,
		Position:  p.Position,
		IsCompany: p.IsCompany,
		CreatedAt: p.CreatedDate.toTime(),
	}
	if len(p.Phones) > 0 {
		contact.Phone = p.Phones[0].Number
	}
	if len(p.Companies) > 0 {
		contact.Company = p.Companies[0].Name
	}
	return contact
}

type contactEnvelope struct {
	Contact contactPayload `json:"contact"`
	ID      int            `json:"id"`
}

type contactListEnvelope struct {
	Contacts []contactPayload `json:"contacts"`
}

// GetContactDetails fetches the full record for one contact.
func (c *Client) GetContactDetails(ctx context.Context, id int) (Contact, error) {
	if id <= 0 {
		return Contact{}, NewError(CategoryValidation, "contact id must be a positive integer")
	}
	body, err := c.do(ctx, apiRequest{
		method: http.MethodGet,
		path:   fmt.Sprintf("contact/%d", id),
		query:  fieldsQuery(contactDetailFields),
	})
	if err != nil {
		return Contact{}, err
	}
	var envelope contactEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Contact{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable contact")
	}
	return envelope.Contact.toDomain(), nil
}

// ListContacts returns contacts, companies only when isCompany is set.
func (c *Client) ListContacts(ctx context.Context, limit, offset int, isCompany bool) ([]Contact, error) {
	limit, offset, err := normalizeWindow(limit, offset)
	if err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, limit)
	err = c.paginate(ctx, limit, offset, func(ctx context.Context, pageOffset, pageSize int) (int, error) {
		body, err := c.do(ctx, apiRequest{
			method: http.MethodPost,
			path:   "contact/list",
			body: map[string]any{
				"offset":    pageOffset,
				"pageSize":  pageSize,
				"isCompany": isCompany,
				"fields":    contactFields,
			},
		})
		if err != nil {
			return 0, err
		}
		var envelope contactListEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return 0, NewError(CategoryRemoteRejected, "planfix returned an unreadable contact list")
		}
		for _, payload := range envelope.Contacts {
			contacts = append(contacts, payload.toDomain())
		}
		return len(envelope.Contacts), nil
	})
	if err != nil {
		return nil, err
	}
	if len(contacts) > limit {
		contacts = contacts[:limit]
	}
	return contacts, nil
}

// ContactCreate is the input for AddContact.
type ContactCreate struct {
	Name      string
	Lastname  string
	Email     string
	Phone     string
	Position  string
	IsCompany bool
	// IdempotencyKey, when set, makes the create safe to retry on 5xx.
	IdempotencyKey string
}

type contactCreateRequest struct {
	Name      string     `json:"name"`
	Lastname  string     `json:"lastname,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phones    []phoneRef `json:"phones,omitempty"`
	Position  string     `json:"position,omitempty"`
	IsCompany bool       `json:"isCompany"`
}

// AddContact creates a contact. The email, if present, must be syntactically
// valid before anything is submitted.
func (c *Client) AddContact(ctx context.Context, in ContactCreate) (Contact, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Contact{}, NewError(CategoryValidation, "contact name is required")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return Contact{}, NewError(CategoryValidation, "email %q is not a valid address", in.Email)
		}
	}

	request := contactCreateRequest{
		Name:      in.Name,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Position:  in.Position,
		IsCompany: in.IsCompany,
	}
	if in.Phone != "" {
		request.Phones = []phoneRef{{Number: in.Phone, Type: 1}}
	}

	body, err := c.do(ctx, apiRequest{
		method:         http.MethodPost,
		path:           "contact/",
		body:           request,
		write:          true,
		idempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return Contact{}, err
	}
	var envelope contactEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Contact{}, NewError(CategoryRemoteRejected, "planfix returned an unreadable contact")
	}
	if envelope.Contact.ID != 0 || envelope.Contact.Name != "" {
		return envelope.Contact.toDomain(), nil
	}
	if envelope.ID > 0 {
		return c.GetContactDetails(ctx, envelope.ID)
	}
	return Contact{}, nil
}

package model

import (
	"encoding/json"
	"time"
)

// NewProfileViewRaw is one viewer impression ready to be written.
// It is built once per edge and never mutated afterwards.
type NewProfileViewRaw struct {
	ViewerUserID         string
	ViewerCompanyPageURL *string
	ViewerCompanyNameRaw *string
	ViewedAtRaw          string
	ViewedAt             time.Time
	RawJSON              json.RawMessage
}

// ProfileViewRaw is a stored impression row.
// (ViewerUserID, ViewedAt) is unique across the table.
type ProfileViewRaw struct {
	ID                   int64           `json:"id"`
	ViewerUserID         string          `json:"viewer_user_id"`
	ViewerCompanyPageURL *string         `json:"viewer_company_page_url,omitempty"`
	ViewerCompanyNameRaw *string         `json:"viewer_company_name_raw,omitempty"`
	ViewedAtRaw          string          `json:"viewed_at_raw"`
	ViewedAt             time.Time       `json:"viewed_at"`
	RawJSON              json.RawMessage `json:"raw_json"`
	CreatedAt            time.Time       `json:"created_at"`
}

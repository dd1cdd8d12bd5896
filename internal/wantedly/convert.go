package wantedly

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"profileviews/internal/model"
)

// ToProfileViewRaw maps a decoded node into the record written to storage.
// raw is the node JSON exactly as it appeared in the snapshot.
func ToProfileViewRaw(node *ProfileViewNode, raw []byte, snapshotAt time.Time) (*model.NewProfileViewRaw, error) {
	viewedAt, err := ResolveViewedAt(node.ImpressedDateTime, snapshotAt)
	if err != nil {
		return nil, fmt.Errorf("convert profile view of user %d: %w", node.UserID, err)
	}

	return &model.NewProfileViewRaw{
		ViewerUserID:         strconv.FormatInt(node.UserID, 10),
		ViewerCompanyPageURL: node.CompanyPageURL,
		ViewerCompanyNameRaw: companyNameHint(node),
		ViewedAtRaw:          node.ImpressedDateTime,
		ViewedAt:             viewedAt,
		RawJSON:              bytes.Clone(raw),
	}, nil
}

// companyNameHint currently passes shortDescription through untouched.
// TODO: split shortDescription into company and title once its layout variants are catalogued.
func companyNameHint(node *ProfileViewNode) *string {
	return node.ShortDescription
}

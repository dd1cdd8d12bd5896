package wantedly

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// ProfileViewNode is the typed projection of one edge's `node` payload.
type ProfileViewNode struct {
	UserID            int64
	ShortDescription  *string
	CompanyPageURL    *string
	ImpressedDateTime string
}

// profileViewNodeDTO declares which node fields are required.
// Pointers distinguish a missing or null field from a zero value.
type profileViewNodeDTO struct {
	UserID                *int64                    `json:"userId" validate:"required"`
	ShortDescription      *string                   `json:"shortDescription"`
	CompanyPageURL        *string                   `json:"companyPageUrl"`
	ProfileImpressionMeta *profileImpressionMetaDTO `json:"profileImpressionMeta" validate:"required"`
}

type profileImpressionMetaDTO struct {
	ImpressedDateTime *string `json:"impressedDateTime" validate:"required"`
}

var (
	nodeValidator = newNodeValidator()

	errInvalidUTF8 = errors.New("node contains invalid UTF-8")
)

func newNodeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeNode decodes a raw node. It returns either a fully populated node or
// a *NodeDecodeError, never a partial result.
func DecodeNode(raw []byte) (*ProfileViewNode, error) {
	if !utf8.Valid(raw) {
		return nil, &NodeDecodeError{Err: errInvalidUTF8}
	}
	if err := checkUserID(raw); err != nil {
		return nil, &NodeDecodeError{Err: err}
	}

	var dto profileViewNodeDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, &NodeDecodeError{Err: err}
	}
	if err := nodeValidator.Struct(&dto); err != nil {
		return nil, &NodeDecodeError{Err: err}
	}

	return &ProfileViewNode{
		UserID:            *dto.UserID,
		ShortDescription:  dto.ShortDescription,
		CompanyPageURL:    dto.CompanyPageURL,
		ImpressedDateTime: *dto.ProfileImpressionMeta.ImpressedDateTime,
	}, nil
}

// checkUserID names the field when userId is present but not an integer,
// since the generic decoder error for 1.0 or 1e3 does not. Other problems
// are left to the full decode.
func checkUserID(raw []byte) error {
	var head struct {
		UserID json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil
	}
	v := bytes.TrimSpace(head.UserID)
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	if _, err := strconv.ParseInt(string(v), 10, 64); err != nil {
		return fmt.Errorf("userId must be an integer, got %s", v)
	}
	return nil
}

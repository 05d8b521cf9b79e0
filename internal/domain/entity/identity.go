package entity

import (
	"fmt"
	"strings"
)

// LineProvider is stored in user metadata to mark identities created by LINE login.
const LineProvider = "line (custom)"

// Identity is a user record owned by the external auth directory.
type Identity struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
}

// LineUserID returns the linked LINE user id from metadata, or "" when none.
func (i *Identity) LineUserID() string {
	if i == nil || i.UserMetadata == nil {
		return ""
	}
	v, _ := i.UserMetadata["line_user_id"].(string)
	return v
}

// LineProfile is what LINE returns for the logged-in user.
type LineProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

// Metadata builds the user metadata written on create and refreshed on every login.
func (p LineProfile) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"full_name":    p.DisplayName,
		"avatar_url":   p.PictureURL,
		"line_user_id": p.UserID,
		"provider":     LineProvider,
	}
}

// LocalEmail derives the synthetic, case-folded email used as the identity key for a LINE user.
func LocalEmail(lineUserID string) string {
	return strings.ToLower(fmt.Sprintf("line_%s@line.login", lineUserID))
}

package draft

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var ErrInvalidShareCode = errors.New("invalid share code")

// sharePayload is the compact wire form behind a share code.
type sharePayload struct {
	Player string   `json:"p"`
	Show   string   `json:"s"`
	Songs  []string `json:"songs"`
}

// EncodeShareCode packs a draft's picks into a URL-safe token that
// another user can import.
func EncodeShareCode(d Draft) (string, error) {
	if err := d.ValidateBasic(); err != nil {
		return "", err
	}

	raw, err := sonic.Marshal(sharePayload{
		Player: d.UserID,
		Show:   d.ShowID,
		Songs:  d.SongIDs,
	})
	if err != nil {
		return "", fmt.Errorf("encode share payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// SharedDraft is the decoded content of a share code.
type SharedDraft struct {
	UserID  string
	ShowID  string
	SongIDs []string
}

func DecodeShareCode(code string) (SharedDraft, error) {
	if code == "" {
		return SharedDraft{}, fmt.Errorf("%w: empty", ErrInvalidShareCode)
	}

	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return SharedDraft{}, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}

	var payload sharePayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return SharedDraft{}, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	if payload.Show == "" || len(payload.Songs) == 0 {
		return SharedDraft{}, fmt.Errorf("%w: missing show or songs", ErrInvalidShareCode)
	}

	return SharedDraft{
		UserID:  payload.Player,
		ShowID:  payload.Show,
		SongIDs: payload.Songs,
	}, nil
}

// Package invite handles the colon-delimited invite descriptor persisted on
// server rows and the invite-creation logic built on top of it.
package invite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDescriptor = errors.New("invalid invite descriptor")

type Kind string

const (
	KindNone    Kind = "none"
	KindURL     Kind = "invite_url"
	KindPerUser Kind = "per_user"
)

// Descriptor is the parsed form of a stored invite string:
// "none" | "invite_url:<url>" | "per_user:<channel_id>:<max_uses>:<max_age>".
type Descriptor struct {
	Kind      Kind
	URL       string
	ChannelID string
	MaxUses   int
	MaxAge    int
}

const (
	defaultMaxUses = 1
	defaultMaxAge  = 300 // seconds
)

// ParseDescriptor parses a stored invite string. Missing trailing per_user
// fields fall back to defaults rather than failing.
func ParseDescriptor(s string) (Descriptor, error) {
	if s == string(KindNone) {
		return Descriptor{Kind: KindNone}, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Descriptor{}, ErrInvalidDescriptor
	}

	switch Kind(parts[0]) {
	case KindURL:
		// the URL itself may contain colons
		return Descriptor{Kind: KindURL, URL: strings.Join(parts[1:], ":")}, nil
	case KindPerUser:
		d := Descriptor{Kind: KindPerUser, ChannelID: parts[1], MaxUses: defaultMaxUses, MaxAge: defaultMaxAge}

		if len(parts) >= 3 {
			uses, err := strconv.Atoi(parts[2])
			if err != nil {
				return Descriptor{}, ErrInvalidDescriptor
			}
			d.MaxUses = uses
		}

		if len(parts) >= 4 {
			age, err := strconv.Atoi(parts[3])
			if err != nil {
				return Descriptor{}, ErrInvalidDescriptor
			}
			d.MaxAge = age
		}

		return d, nil
	default:
		return Descriptor{}, ErrInvalidDescriptor
	}
}

func (d Descriptor) String() string {
	switch d.Kind {
	case KindURL:
		return fmt.Sprintf("%s:%s", KindURL, d.URL)
	case KindPerUser:
		return fmt.Sprintf("%s:%s:%d:%d", KindPerUser, d.ChannelID, d.MaxUses, d.MaxAge)
	default:
		return string(KindNone)
	}
}

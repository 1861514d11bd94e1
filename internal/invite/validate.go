package invite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// ValidateInviteURL follows the URL through any redirects, checks it lands on
// an official Discord invite, and rejects invites that are not permanent.
func ValidateInviteURL(ctx context.Context, s *discordgo.Session, inviteURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, inviteURL, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL.String()
	if err := CheckResolvedInviteURL(finalURL); err != nil {
		return err
	}

	code := inviteCode(finalURL)

	inv, err := s.InviteComplex(code, "", false, true, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to fetch invite: %w", err)
	}

	if inv.ExpiresAt != nil {
		if time.Until(*inv.ExpiresAt) < 30*24*time.Hour {
			return errors.New("invite expiry must be at least 30 days away")
		}

		return errors.New("invite must be permanent")
	}

	return nil
}

// CheckResolvedInviteURL verifies that a fully-resolved URL points at an
// official Discord invite.
func CheckResolvedInviteURL(url string) error {
	if !strings.HasPrefix(url, "https://discord.com/invite/") && !strings.HasPrefix(url, "https://discord.gg") {
		return errors.New("invalid invite URL")
	}
	return nil
}

func inviteCode(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	return parts[len(parts)-1]
}

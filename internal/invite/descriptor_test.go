package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptorNone(t *testing.T) {
	d, err := ParseDescriptor("none")
	require.NoError(t, err)
	assert.Equal(t, KindNone, d.Kind)
}

func TestParseDescriptorURL(t *testing.T) {
	d, err := ParseDescriptor("invite_url:https://discord.gg/abc123")
	require.NoError(t, err)
	assert.Equal(t, KindURL, d.Kind)
	// colons inside the URL must survive the split
	assert.Equal(t, "https://discord.gg/abc123", d.URL)
}

func TestParseDescriptorPerUser(t *testing.T) {
	d, err := ParseDescriptor("per_user:123456789012345678:5:600")
	require.NoError(t, err)
	assert.Equal(t, KindPerUser, d.Kind)
	assert.Equal(t, "123456789012345678", d.ChannelID)
	assert.Equal(t, 5, d.MaxUses)
	assert.Equal(t, 600, d.MaxAge)
}

func TestParseDescriptorPerUserDefaults(t *testing.T) {
	d, err := ParseDescriptor("per_user:123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, 1, d.MaxUses)
	assert.Equal(t, 300, d.MaxAge)

	d, err = ParseDescriptor("per_user:123456789012345678:3")
	require.NoError(t, err)
	assert.Equal(t, 3, d.MaxUses)
	assert.Equal(t, 300, d.MaxAge)
}

func TestParseDescriptorInvalid(t *testing.T) {
	for _, s := range []string{"", "invite_url", "per_user", "bogus:field", "per_user:ch:x"} {
		_, err := ParseDescriptor(s)
		assert.ErrorIs(t, err, ErrInvalidDescriptor, "input %q", s)
	}
}

func TestDescriptorString(t *testing.T) {
	assert.Equal(t, "none", Descriptor{Kind: KindNone}.String())
	assert.Equal(t, "invite_url:https://discord.gg/abc", Descriptor{Kind: KindURL, URL: "https://discord.gg/abc"}.String())
	assert.Equal(t, "per_user:42:1:300", Descriptor{Kind: KindPerUser, ChannelID: "42", MaxUses: 1, MaxAge: 300}.String())
}

func TestCheckResolvedInviteURL(t *testing.T) {
	assert.NoError(t, CheckResolvedInviteURL("https://discord.com/invite/abc123"))
	assert.NoError(t, CheckResolvedInviteURL("https://discord.gg/abc123"))
	assert.Error(t, CheckResolvedInviteURL("https://example.com/invite/abc123"))
	assert.Error(t, CheckResolvedInviteURL("http://discord.gg/abc123"))
}

func TestInviteCode(t *testing.T) {
	assert.Equal(t, "abc123", inviteCode("https://discord.gg/abc123"))
	assert.Equal(t, "abc123", inviteCode("https://discord.com/invite/abc123/"))
}

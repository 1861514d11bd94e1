package discord

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinitybotlist/infernoplex/internal/perms"
)

func TestValidateListingInputs(t *testing.T) {
	short := "A great community for gamers" // 28 chars
	long := strings.Repeat("Lots of fun. ", 4)

	assert.NoError(t, validateListingInputs("myserver", short, long))

	var ge *perms.GuardError
	require.ErrorAs(t, validateListingInputs("", short, long), &ge)
	require.ErrorAs(t, validateListingInputs(strings.Repeat("x", 21), short, long), &ge)
	require.ErrorAs(t, validateListingInputs("myserver", "too short", long), &ge)
	require.ErrorAs(t, validateListingInputs("myserver", short, "too short"), &ge)
	require.ErrorAs(t, validateListingInputs("myserver", strings.Repeat("x", 101), long), &ge)
	require.ErrorAs(t, validateListingInputs("myserver", short, strings.Repeat("x", 4001)), &ge)
}

func TestValidateDescriptionsBounds(t *testing.T) {
	assert.NoError(t, validateDescriptions(strings.Repeat("x", 20), strings.Repeat("x", 30)))
	assert.NoError(t, validateDescriptions(strings.Repeat("x", 100), strings.Repeat("x", 4000)))
	assert.Error(t, validateDescriptions(strings.Repeat("x", 19), strings.Repeat("x", 30)))
	assert.Error(t, validateDescriptions(strings.Repeat("x", 20), strings.Repeat("x", 29)))
}

func TestToInt32(t *testing.T) {
	v, err := toInt32(250000)
	require.NoError(t, err)
	assert.Equal(t, int32(250000), v)

	_, err = toInt32(math.MaxInt32 + 1)
	assert.Error(t, err)

	_, err = toInt32(-1)
	assert.Error(t, err)

	v, err = toInt32(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), v)
}

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/infinitybotlist/infernoplex/internal/invite"
)

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx := func(header string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/invites", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	assert.Equal(t, "tok123", bearerToken(ctx("Bearer tok123")))
	assert.Equal(t, "tok123", bearerToken(ctx("tok123")))
	assert.Equal(t, "", bearerToken(ctx("")))
}

func TestInviteErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, inviteErrorStatus(invite.ErrServerNotFound))
	assert.Equal(t, http.StatusUnauthorized, inviteErrorStatus(invite.ErrNeedsLogin))
	assert.Equal(t, http.StatusForbidden, inviteErrorStatus(invite.ErrBlacklisted))
	assert.Equal(t, http.StatusBadRequest, inviteErrorStatus(invite.ErrNoInvite))
	assert.Equal(t, http.StatusBadRequest, inviteErrorStatus(invite.ErrStateNotPublic))
	assert.Equal(t, http.StatusInternalServerError, inviteErrorStatus(assert.AnError))
}

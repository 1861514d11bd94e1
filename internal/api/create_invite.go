package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/infinitybotlist/infernoplex/internal/invite"
	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

// registerCreateInvite POST /invites
//
// Resolves a listed server's invite for the caller. A bearer session is
// optional; anonymous callers can only fetch invites of servers that do not
// require login.
func (a *API) registerCreateInvite() {
	type request struct {
		GuildID string `json:"guild_id" binding:"required"`
	}

	a.router.POST("/invites", func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var userID string
		if token := bearerToken(c); token != "" {
			session, err := model.FindSessionByToken(a.ctx, a.storage.Pool(), token)
			if err != nil {
				a.logger.Errorf("Failed to look up session: %s.", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			if session == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
				return
			}
			if session.TargetType == "user" {
				userID = session.TargetID
			}
		}

		url, err := invite.CreateInviteForUser(a.ctx, a.session, a.storage.Pool(), req.GuildID, userID, false)
		if err != nil {
			c.JSON(inviteErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"invite": url})
	})
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return h
}

func inviteErrorStatus(err error) int {
	switch {
	case errors.Is(err, invite.ErrServerNotFound):
		return http.StatusNotFound
	case errors.Is(err, invite.ErrNeedsLogin):
		return http.StatusUnauthorized
	case errors.Is(err, invite.ErrBlacklisted):
		return http.StatusForbidden
	case errors.Is(err, invite.ErrNoInvite),
		errors.Is(err, invite.ErrInvalidInvite),
		errors.Is(err, invite.ErrNotApproved),
		errors.Is(err, invite.ErrStateNotPublic):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

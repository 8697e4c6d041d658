package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionports "github.com/Apurer/cartsync/internal/domains/sessions/ports"
)

// SessionAPI issues and revokes bearer tokens.
type SessionAPI struct {
	service sessionports.Service
}

func NewSessionAPI(service sessionports.Service) SessionAPI {
	return SessionAPI{service: service}
}

// Post /v1/sessions
// Issues a token for a user
func (api *SessionAPI) CreateSession(c *gin.Context) {
	var payload SessionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	token, err := api.service.Issue(c.Request.Context(), payload.UserId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{Token: token})
}

// Delete /v1/sessions
// Revokes the bearer token of the request
func (api *SessionAPI) DeleteSession(c *gin.Context) {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	if err := api.service.Revoke(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

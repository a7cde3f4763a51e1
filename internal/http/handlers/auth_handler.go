// README: Login handler; exchanges an access code for a session token.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mawad/internal/modules/agent"
)

type AuthHandler struct {
	agents *agent.Service
}

func NewAuthHandler(agents *agent.Service) *AuthHandler {
	return &AuthHandler{agents: agents}
}

type loginReq struct {
	Code string `json:"code"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		writeError(c, http.StatusBadRequest, "access code required")
		return
	}
	token, a, err := h.agents.Login(c.Request.Context(), req.Code)
	if err == agent.ErrInvalidCode {
		writeError(c, http.StatusUnauthorized, "invalid code")
		return
	}
	if err != nil {
		writeAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResp{
		AccessToken: token,
		TokenType:   "bearer",
		Name:        a.Name,
		IsAdmin:     a.IsAdmin,
	})
}

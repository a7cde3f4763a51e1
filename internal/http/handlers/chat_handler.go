// README: Chat endpoint; one conversation turn per request.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mawad/internal/http/middleware"
	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
	"mawad/internal/modules/location"
)

type ChatHandler struct {
	chat      *chat.Service
	agents    *agent.Service
	locations *location.Service
}

func NewChatHandler(chatSvc *chat.Service, agents *agent.Service, locations *location.Service) *ChatHandler {
	return &ChatHandler{chat: chatSvc, agents: agents, locations: locations}
}

type chatReq struct {
	Message string   `json:"message"`
	History []string `json:"history"`
}

type chatResp struct {
	Reply       string `json:"reply"`
	OrderPlaced bool   `json:"order_placed"`
}

// Turn appends the customer message to the caller-held transcript, fetches
// the agent's allow-list fresh, and runs one chat turn. The transcript
// lives on the client; the server keeps no conversation state.
func (h *ChatHandler) Turn(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		writeError(c, http.StatusBadRequest, "message required")
		return
	}

	ctx := c.Request.Context()
	a, err := h.agents.Get(ctx, middleware.CallerID(c))
	if err != nil {
		writeAgentError(c, err)
		return
	}

	allowed, err := h.locations.AllowedNames(ctx, a.ID)
	if err != nil {
		writeLocationError(c, err)
		return
	}

	transcript := append(req.History, "العميل: "+req.Message)
	reply, placed := h.chat.ProcessTurn(ctx, transcript, a.Identity(), allowed)
	c.JSON(http.StatusOK, chatResp{Reply: reply, OrderPlaced: placed})
}

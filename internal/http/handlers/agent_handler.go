// README: Admin agent management handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mawad/internal/modules/agent"
)

type AgentHandler struct {
	agents *agent.Service
}

func NewAgentHandler(agents *agent.Service) *AgentHandler {
	return &AgentHandler{agents: agents}
}

type agentView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
}

// Access code hashes never leave the service layer.
func toView(a *agent.Agent) agentView {
	return agentView{ID: a.ID, Name: a.Name, Phone: a.Phone, IsAdmin: a.IsAdmin}
}

func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.agents.List(c.Request.Context())
	if err != nil {
		writeAgentError(c, err)
		return
	}
	views := make([]agentView, 0, len(agents))
	for i := range agents {
		views = append(views, toView(&agents[i]))
	}
	c.JSON(http.StatusOK, views)
}

type createAgentReq struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *AgentHandler) Create(c *gin.Context) {
	var req createAgentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	a, err := h.agents.Create(c.Request.Context(), req.Code, req.Name, req.Phone)
	if err != nil {
		writeAgentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toView(a))
}

type updateAgentReq struct {
	Code  *string `json:"code"`
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// Update applies only the fields present in the request.
func (h *AgentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAgentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	ctx := c.Request.Context()
	if req.Name != nil {
		if err := h.agents.UpdateName(ctx, id, *req.Name); err != nil {
			writeAgentError(c, err)
			return
		}
	}
	if req.Phone != nil {
		if err := h.agents.UpdatePhone(ctx, id, *req.Phone); err != nil {
			writeAgentError(c, err)
			return
		}
	}
	if req.Code != nil {
		if err := h.agents.UpdateCode(ctx, id, *req.Code); err != nil {
			writeAgentError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AgentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.agents.Delete(c.Request.Context(), id); err != nil {
		writeAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

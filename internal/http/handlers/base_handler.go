// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mawad/internal/modules/agent"
	"mawad/internal/modules/location"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeAgentError(c *gin.Context, err error) {
	switch err {
	case agent.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case agent.ErrCodeLength, agent.ErrNameTooLong, agent.ErrPhoneFormat:
		writeError(c, http.StatusBadRequest, err.Error())
	case agent.ErrCodeTaken:
		writeError(c, http.StatusConflict, err.Error())
	case agent.ErrLastAdmin:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeLocationError(c *gin.Context, err error) {
	switch err {
	case location.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case location.ErrBadName:
		writeError(c, http.StatusBadRequest, err.Error())
	case location.ErrDuplicate, location.ErrAlreadyAssigned:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

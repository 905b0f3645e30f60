package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/http/response"
)

// pathUUID parses a uuid path parameter, writing the 400 itself on failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter; absent returns nil.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return nil, false
	}
	return &id, true
}

package response

import (
	"fmt"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDParam разбирает параметр пути как uuid
func UUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a uuid", domain.ErrInvalidInput, name)
	}
	return id, nil
}

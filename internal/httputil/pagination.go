package httputil

import (
	"fmt"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

// MaxPageLimit is the largest page a list endpoint returns.
const MaxPageLimit = 100

// pageQuery binds the offset and limit query parameters.
type pageQuery struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=50"`
}

// ParsePagination reads offset (default 0) and limit (default 50, at most MaxPageLimit).
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return 0, 0, fmt.Errorf("invalid pagination parameters: offset and limit must be integers")
	}

	err = validation.ValidateStruct(&q,
		validation.Field(&q.Offset, validation.Min(0)),
		validation.Field(&q.Limit, validation.Required, validation.Min(1), validation.Max(MaxPageLimit)),
	)
	if err != nil {
		return 0, 0, err
	}

	return q.Offset, q.Limit, nil
}

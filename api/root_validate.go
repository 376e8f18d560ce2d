package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only exists so clients can check their token without
// triggering any real work. The jwt middleware does everything
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}

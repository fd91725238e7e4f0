package controllers

import (
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// respondError writes a service error as the standard error payload, merging
// any structured details (such as the staged_id of a retained upload) into
// the body.
func respondError(ctx *gin.Context, svcErr *services.ServiceError) {
	body := gin.H{"error": svcErr.Message}
	for k, v := range svcErr.Details {
		body[k] = v
	}
	ctx.JSON(svcErr.StatusCode, body)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/apperror"
)

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}

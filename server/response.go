package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RichTeaMan/timer/errors"
	"github.com/RichTeaMan/timer/logger"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError writes err as an error envelope. AppErrors keep their
// status; anything else becomes a 500 INTERNAL_ERROR. Internal errors are
// logged with their cause.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	if appErr.Code == errors.ErrCodeInternal {
		logger.WithContext(c.Request.Context()).Error("unhandled error", logger.Fields(
			logger.FieldError, err.Error(),
			"path", c.Request.URL.Path,
		))
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = appErr.Code.HTTPStatus()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, appErr.ToResponse())
}

// RespondOK sends 200 with data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondCreated sends 201 with data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}

// RespondNoContent sends 204.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"

	"lexdesk/database"
	"lexdesk/services/callable"
	"lexdesk/services/chat"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toCallableError maps service errors onto the {code, message} body.
func toCallableError(err error) *callable.Error {
	var ce *callable.Error
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, database.ErrNotFound):
		return callable.Errorf(callable.NotFound, "not found")
	case errors.Is(err, chat.ErrForbidden), errors.Is(err, chat.ErrNotGroupMember):
		return callable.Errorf(callable.PermissionDenied, "%s", err.Error())
	case errors.Is(err, chat.ErrEditWindowClosed), errors.Is(err, chat.ErrMessageDeleted):
		return callable.Errorf(callable.FailedPrecondition, "%s", err.Error())
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrInvalidTarget),
		errors.Is(err, chat.ErrInvalidGroup):
		return callable.Errorf(callable.InvalidArgument, "%s", err.Error())
	}
	return callable.AsError(err)
}

// respondError writes err in the callable error shape. Internal errors are
// logged with their cause and answered with a generic message.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	ce := toCallableError(err)
	if ce.Code == callable.Internal {
		logger.Error(op+": failed", zap.Error(err))
	} else {
		logger.Debug(op+": rejected", zap.String("code", string(ce.Code)), zap.String("message", ce.Message))
	}
	utils.JSONError(c, ce.Code.HTTPStatus(), string(ce.Code), ce.Message)
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, callable.InvalidArgument.HTTPStatus(), string(callable.InvalidArgument), message)
}

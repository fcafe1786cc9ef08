package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/transport"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

const defaultMessageLimit = 100

type MessageHandler struct {
	Svc *service.MessageService
}

func (h *MessageHandler) CreateMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.create")

	var req transport.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_message_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_message_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.Svc.Create(ctx, service.CreateMessageInput{
		Sender:   req.Sender,
		Body:     req.Body,
		Title:    req.Title,
		Datetime: req.Datetime,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_message_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create message")
	}

	return c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.list")

	offset, limit := pageWindow(c, defaultMessageLimit)
	items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_messages_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read messages")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MessageHandler) GetMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.get")

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	msg, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		l.Error("get_message_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read message")
	}
	return c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.delete")

	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	msg, err := h.Svc.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		l.Error("delete_message_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete message")
	}

	l.Info("delete_message_success", "messageID", msg.ID)
	return c.JSON(http.StatusOK, msg)
}

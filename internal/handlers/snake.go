package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/transport"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

const (
	defaultSnakeLimit = 6
)

type SnakeHandler struct {
	Svc *service.SnakeService
}

func (h *SnakeHandler) ListSnakes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.list")

	offset, limit := pageWindow(c, defaultSnakeLimit)
	items, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_snakes_error", "status", 500, "reason", "cannot read snakes", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read snakes")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SnakeHandler) GetSnake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_snake_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	snake, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Snake not found")
		}
		l.Error("get_snake_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read snake")
	}
	return c.JSON(http.StatusOK, snake)
}

// CreateSnake takes the text fields and the picture in one multipart form.
func (h *SnakeHandler) CreateSnake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.create")

	var req transport.CreateSnakeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_snake_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_snake_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	img, closeImg, err := imageFromForm(c)
	if err != nil {
		l.Warn("create_snake_error", "status", 400, "reason", "file is missing", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	defer closeImg()

	snake, err := h.Svc.Create(ctx, service.CreateSnakeInput{
		Species:     req.Species,
		Description: req.Description,
		Sex:         req.Sex,
		Image:       img,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, service.ErrImageUpload):
			return echo.NewHTTPError(http.StatusInternalServerError, "error uploading image")
		default:
			l.Error("create_snake_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create snake")
		}
	}

	l.Info("create_snake_success", "snakeID", snake.ID)
	return c.JSON(http.StatusOK, snake)
}

func (h *SnakeHandler) PatchSnake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.patch")

	id, err := parseID(c)
	if err != nil {
		l.Warn("patch_snake_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchSnakeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_snake_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("patch_snake_error", "status", 400, "reason", "validation failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snake, err := h.Svc.Patch(ctx, id, service.SnakePatch{
		Species:     req.Species,
		Description: req.Description,
		Sex:         req.Sex,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Snake not found")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("patch_snake_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update snake")
		}
	}

	l.Info("patch_snake_success", "snakeID", snake.ID)
	return c.JSON(http.StatusOK, snake)
}

func (h *SnakeHandler) DeleteSnake(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_snake_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	snake, err := h.Svc.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Snake not found")
		case errors.Is(err, service.ErrImageDelete):
			return echo.NewHTTPError(http.StatusInternalServerError, "error deleting image")
		default:
			l.Error("delete_snake_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete snake")
		}
	}

	l.Info("delete_snake_success", "snakeID", snake.ID)
	return c.JSON(http.StatusOK, snake)
}

func (h *SnakeHandler) SearchSnakes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	offset, limit := pageWindow(c, defaultSnakeLimit)

	total, items, err := h.Svc.Search(ctx, q, offset, limit)
	if err != nil {
		if errors.Is(err, service.ErrSearchDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is disabled")
		}
		l.Error("search_error", "status", 502, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search failed")
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Items: items})
}

// UploadImage stores a picture without creating a snake.
func (h *SnakeHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "snake.upload")

	img, closeImg, err := imageFromForm(c)
	if err != nil {
		l.Warn("upload_error", "status", 400, "reason", "file is missing", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	defer closeImg()

	_, url, err := h.Svc.UploadImage(ctx, img)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error uploading image")
	}

	var resp transport.UploadResponse
	resp.Data.URL = url
	return c.JSON(http.StatusOK, resp)
}

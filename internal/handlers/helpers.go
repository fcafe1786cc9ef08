package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/util"
)

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func pageWindow(c echo.Context, defLimit int) (offset, limit int) {
	skip := util.ParseIntDefault(c.QueryParam("skip"), 0)
	limit = util.ParseIntDefault(c.QueryParam("limit"), defLimit)
	return util.Window(skip, limit, defLimit)
}

// imageFromForm opens the multipart "file" field. The caller closes the
// returned closer.
func imageFromForm(c echo.Context) (service.Image, func() error, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.Image{}, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.Image{}, nil, err
	}
	return service.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
		Size:        fh.Size,
	}, f.Close, nil
}

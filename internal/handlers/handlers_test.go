package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/internal/service"
	"github.com/Skotchmaster/snake_catalogue/internal/testutil"
	"github.com/Skotchmaster/snake_catalogue/pkg/hash"
	"github.com/Skotchmaster/snake_catalogue/pkg/tokens"
)

type testEnv struct {
	E       *echo.Echo
	Repo    *repo.GormRepo
	Auth    *AuthHandler
	Snakes  *SnakeHandler
	Msgs    *MessageHandler
	Health  *HealthHandler
	Images  *testutil.MemoryImages
	Events  *testutil.RecordingPublisher
	AuthSvc *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	ts, err := tokens.NewService([]byte("handler-test-secret"))
	require.NoError(t, err)

	images := testutil.NewMemoryImages()
	events := &testutil.RecordingPublisher{}
	authSvc := service.NewAuthService(r, hash.NewBcrypt(bcrypt.MinCost), ts, 30*time.Minute, events)

	return &testEnv{
		E:       echo.New(),
		Repo:    r,
		Auth:    &AuthHandler{Svc: authSvc},
		Snakes:  &SnakeHandler{Svc: &service.SnakeService{Repo: r, Images: images, Events: events}},
		Msgs:    &MessageHandler{Svc: &service.MessageService{Repo: r, Events: events}},
		Health:  &HealthHandler{DB: db},
		Images:  images,
		Events:  events,
		AuthSvc: authSvc,
	}
}

func (env *testEnv) jsonRequest(method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func (env *testEnv) formRequest(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func (env *testEnv) multipartRequest(t *testing.T, target string, fields map[string]string, filename string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}

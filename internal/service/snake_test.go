package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/internal/testutil"
)

type fakeIndex struct {
	enabled bool
	indexed map[uint]models.Snake
	removed []uint
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{enabled: true, indexed: map[uint]models.Snake{}}
}

func (f *fakeIndex) Enabled() bool { return f.enabled }

func (f *fakeIndex) IndexSnake(_ context.Context, s *models.Snake) error {
	if f.err != nil {
		return f.err
	}
	f.indexed[s.ID] = *s
	return nil
}

func (f *fakeIndex) DeleteSnake(_ context.Context, id uint) error {
	f.removed = append(f.removed, id)
	delete(f.indexed, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, query string, _, _ int) (int64, []models.Snake, error) {
	var out []models.Snake
	for _, s := range f.indexed {
		if s.Species == query {
			out = append(out, s)
		}
	}
	return int64(len(out)), out, nil
}

type snakeEnv struct {
	svc    *SnakeService
	images *testutil.MemoryImages
	index  *fakeIndex
	events *testutil.RecordingPublisher
}

func newSnakeEnv(t *testing.T) *snakeEnv {
	t.Helper()
	env := &snakeEnv{
		images: testutil.NewMemoryImages(),
		index:  newFakeIndex(),
		events: &testutil.RecordingPublisher{},
	}
	env.svc = &SnakeService{
		Repo:   &repo.GormRepo{DB: testutil.NewDB(t)},
		Images: env.images,
		Index:  env.index,
		Events: env.events,
	}
	return env
}

func pngImage() Image {
	data := []byte("\x89PNG")
	return Image{Filename: "boa.png", ContentType: "image/png", Body: bytes.NewReader(data), Size: int64(len(data))}
}

func TestSnakeService_CreatePatchDelete(t *testing.T) {
	env := newSnakeEnv(t)
	ctx := context.Background()

	snake, err := env.svc.Create(ctx, CreateSnakeInput{Species: "boa", Description: "big", Sex: "male", Image: pngImage()})
	require.NoError(t, err)
	assert.NotZero(t, snake.ID)
	assert.Equal(t, "http://images.test/"+snake.ImageKey, snake.ImageURL)
	assert.Equal(t, 1, env.images.Len())
	assert.Contains(t, env.index.indexed, snake.ID)

	desc := "very big"
	patched, err := env.svc.Patch(ctx, snake.ID, SnakePatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "very big", patched.Description)
	assert.Equal(t, "boa", patched.Species)
	assert.Equal(t, "very big", env.index.indexed[snake.ID].Description)

	deleted, err := env.svc.Delete(ctx, snake.ID)
	require.NoError(t, err)
	assert.Equal(t, snake.ID, deleted.ID)
	assert.Equal(t, 0, env.images.Len())
	assert.Equal(t, []uint{snake.ID}, env.index.removed)

	_, err = env.svc.Get(ctx, snake.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []any{"snake_created", "snake_updated", "snake_deleted"}, env.events.Types())
}

func TestSnakeService_Create_UploadFailure(t *testing.T) {
	env := newSnakeEnv(t)
	env.images.UploadErr = errors.New("bucket gone")

	_, err := env.svc.Create(context.Background(), CreateSnakeInput{Species: "boa", Image: pngImage()})
	assert.ErrorIs(t, err, ErrImageUpload)

	list, err := env.svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSnakeService_Create_Validation(t *testing.T) {
	env := newSnakeEnv(t)

	_, err := env.svc.Create(context.Background(), CreateSnakeInput{Species: " ", Image: pngImage()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.Create(context.Background(), CreateSnakeInput{Species: "boa"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, env.images.Len())
}

func TestSnakeService_Delete_ImageFailureKeepsRow(t *testing.T) {
	env := newSnakeEnv(t)
	ctx := context.Background()

	snake, err := env.svc.Create(ctx, CreateSnakeInput{Species: "boa", Image: pngImage()})
	require.NoError(t, err)

	env.images.DeleteErr = errors.New("denied")
	_, err = env.svc.Delete(ctx, snake.ID)
	assert.ErrorIs(t, err, ErrImageDelete)

	still, err := env.svc.Get(ctx, snake.ID)
	require.NoError(t, err)
	assert.Equal(t, snake.ID, still.ID)
}

func TestSnakeService_NotFound(t *testing.T) {
	env := newSnakeEnv(t)
	ctx := context.Background()

	_, err := env.svc.Patch(ctx, 42, SnakePatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Delete(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnakeService_Patch_EmptySpecies(t *testing.T) {
	env := newSnakeEnv(t)
	ctx := context.Background()

	snake, err := env.svc.Create(ctx, CreateSnakeInput{Species: "boa", Image: pngImage()})
	require.NoError(t, err)

	empty := ""
	_, err = env.svc.Patch(ctx, snake.ID, SnakePatch{Species: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSnakeService_IndexFailureDoesNotFailRequest(t *testing.T) {
	env := newSnakeEnv(t)
	env.index.err = errors.New("es down")

	snake, err := env.svc.Create(context.Background(), CreateSnakeInput{Species: "boa", Image: pngImage()})
	require.NoError(t, err)
	assert.NotZero(t, snake.ID)
}

func TestSnakeService_Search(t *testing.T) {
	env := newSnakeEnv(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, CreateSnakeInput{Species: "boa", Image: pngImage()})
	require.NoError(t, err)

	total, found, err := env.svc.Search(ctx, "boa", 0, 6)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, found, 1)

	env.index.enabled = false
	_, _, err = env.svc.Search(ctx, "boa", 0, 6)
	assert.ErrorIs(t, err, ErrSearchDisabled)

	env.svc.Index = nil
	_, _, err = env.svc.Search(ctx, "boa", 0, 6)
	assert.ErrorIs(t, err, ErrSearchDisabled)
}

package image

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository/memory"
	"github.com/ordinacija/patients-api/internal/service/image"
	"github.com/ordinacija/patients-api/pkg/blobstore"
)

func setupRouter(t *testing.T) (*gin.Engine, *memory.Store, *blobstore.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	blobs := blobstore.NewMemoryStore("http://blobs.local")
	h := NewHandler(image.NewService(store.Images(), blobs))

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine, store, blobs
}

func newVisit(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	visit := &model.Visit{
		PatientID:    1,
		Type:         model.VisitTypeGeneralPractice,
		Date:         time.Now(),
		DoctorsNotes: "checkup",
	}
	require.NoError(t, store.Visits().Create(context.Background(), visit))
	return visit.ID
}

func uploadRequest(t *testing.T, path, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAndListImages(t *testing.T) {
	engine, store, blobs := setupRouter(t)
	visitID := newVisit(t, store)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, uploadRequest(t, "/api/v1/visits/1/images", "scan.jpg", []byte("jpeg bytes")))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, blobs.Len())

	images, err := store.Images().ListByVisit(context.Background(), visitID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, ".jpg", images[0].FileExt)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/visits/1/images", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), images[0].StorageKey())
}

func TestUploadMissingFile(t *testing.T) {
	engine, store, _ := setupRouter(t)
	newVisit(t, store)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/visits/1/images", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImage(t *testing.T) {
	engine, store, blobs := setupRouter(t)
	visitID := newVisit(t, store)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, uploadRequest(t, "/api/v1/visits/1/images", "scan.png", []byte("png bytes")))
	require.Equal(t, http.StatusCreated, w.Code)

	images, err := store.Images().ListByVisit(context.Background(), visitID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	path := fmt.Sprintf("/api/v1/images/%d", images[0].ID)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, blobs.Len())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Image not found")
}

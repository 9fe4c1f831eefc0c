package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-service/internal/middleware"
	"forum-service/internal/mocks"
	"forum-service/internal/models"
	"forum-service/internal/repositories"
)

var testUserID = primitive.NewObjectID()

func setupPostRouter(handler *PostHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: testUserID, Username: "alice"})
		c.Next()
	})
	r.GET("/list", handler.List)
	r.GET("/list/:page", handler.ListPage)
	r.GET("/detail/:id", handler.Detail)
	r.POST("/add", handler.Add)
	r.PUT("/edit/:id", handler.Edit)
	r.POST("/delete/:id", handler.Delete)
	r.POST("/search", handler.Search)
	return r
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestListSuccess(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	posts.On("List", mock.Anything).Return([]models.Post{{Title: "T"}}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}

func TestListPageBeyondEndIsEmpty(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	posts.On("ListPage", mock.Anything, 99).Return([]models.Post{}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list/99", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Posts)
}

func TestListPageInvalidNumber(t *testing.T) {
	handler := NewPostHandler(new(mocks.PostRepositoryMock), new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list/abc", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDetailSuccess(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	comments := new(mocks.CommentRepositoryMock)
	handler := NewPostHandler(posts, comments, new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	postID := primitive.NewObjectID()
	posts.On("GetByID", mock.Anything, postID.Hex()).Return(models.Post{ID: postID, Title: "T"}, nil).Once()
	comments.On("ListForPost", mock.Anything, postID).Return([]models.Comment{{Content: "c"}}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/detail/"+postID.Hex(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
	comments.AssertExpectations(t)
}

func TestDetailMalformedIDIsNotFound(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	posts.On("GetByID", mock.Anything, "zzz").Return(models.Post{}, repositories.ErrInvalidID).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/detail/zzz", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartPost(t *testing.T, path string, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if withFile {
		fw, err := writer.CreateFormFile("img1", "pic.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAddEmptyFieldsRejectedBeforeUpload(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	uploads := new(mocks.StoreMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), uploads, nil)
	router := setupPostRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartPost(t, "/add", map[string]string{"content": "C"}, true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "required")
	uploads.AssertNotCalled(t, "Save")
	posts.AssertNotCalled(t, "Create")
}

func TestAddWithUploadPersistsURL(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	uploads := new(mocks.StoreMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), uploads, nil)
	router := setupPostRouter(handler)

	uploads.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return("/uploads/1", nil).Once()
	posts.On("Create", mock.Anything, testUserID, "alice", "T", "C", "/uploads/1").
		Return(primitive.NewObjectID().Hex(), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartPost(t, "/add", map[string]string{"title": "T", "content": "C"}, true))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	uploads.AssertExpectations(t)
	posts.AssertExpectations(t)
}

func TestAddSuccessRedirects(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	posts.On("Create", mock.Anything, testUserID, "alice", "T", "C", "").Return(primitive.NewObjectID().Hex(), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/add", url.Values{"title": {"T"}, "content": {"C"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/list", rec.Header().Get("Location"))
	posts.AssertExpectations(t)
}

func TestEditSomeoneElsesPostIsNotFound(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	postID := primitive.NewObjectID().Hex()
	posts.On("Update", mock.Anything, postID, testUserID, "T", "C").Return(repositories.ErrPostNotFound).Once()

	form := url.Values{"title": {"T"}, "content": {"C"}}
	req := httptest.NewRequest(http.MethodPut, "/edit/"+postID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	posts.AssertExpectations(t)
}

func TestDeleteAsNonAuthorReportsZero(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	postID := primitive.NewObjectID().Hex()
	posts.On("Delete", mock.Anything, postID, testUserID).Return(int64(0), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/delete/"+postID, url.Values{}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(0), resp["deleted"])
}

func TestDeleteAsAuthorReportsOne(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	postID := primitive.NewObjectID().Hex()
	posts.On("Delete", mock.Anything, postID, testUserID).Return(int64(1), nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/delete/"+postID, url.Values{}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp["deleted"])
}

func TestSearch(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	handler := NewPostHandler(posts, new(mocks.CommentRepositoryMock), new(mocks.StoreMock), nil)
	router := setupPostRouter(handler)

	posts.On("Search", mock.Anything, "golang").Return([]models.Post{{Title: "golang tips"}}, nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/search", url.Values{"search": {"golang"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "golang tips")
	posts.AssertExpectations(t)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/testutil"
	"github.com/d60-Lab/yatube/pkg/storage"
)

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: "test-secret", Issuer: "yatube"},
		Auth:    config.AuthConfig{LoginURL: "/auth/login/"},
		Tracing: config.TracingConfig{ServiceName: "yatube-test"},
	}
	db := testutil.NewDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	feedCache := cache.NewFeedCache(rdb, time.Minute)

	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	h := handler.NewHandler(
		service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, feedCache),
		service.NewPostService(postRepo, groupRepo, commentRepo, storage.NewLocalStore(t.TempDir(), 1<<20), feedCache),
		service.NewCommentService(postRepo, commentRepo, feedCache),
		service.NewRelationshipService(userRepo, followRepo, feedCache),
		cfg.Auth.LoginURL,
	)
	return &testApp{t: t, db: db, cfg: cfg, router: SetupRouter(cfg, h)}
}

func (a *testApp) token(u *model.User) string {
	tok, err := middleware.IssueToken([]byte(a.cfg.JWT.Secret), a.cfg.JWT.Issuer, u.ID, u.Username, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *testApp) do(req *http.Request, as *model.User) *httptest.ResponseRecorder {
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+a.token(as))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, as *model.User) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), as)
}

func (a *testApp) postForm(path string, form url.Values, as *model.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, as)
}

func (a *testApp) count(m any) int64 {
	var n int64
	require.NoError(a.t, a.db.Model(m).Count(&n).Error)
	return n
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Fields  map[string]string `json:"fields"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	w := app.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicPagesAvailableToAnonymous(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	group := testutil.CreateGroup(t, app.db, "address")
	post := testutil.CreatePosts(t, app.db, author, group, 1)[0]

	for _, path := range []string{
		"/api/v1/posts",
		"/api/v1/groups",
		"/api/v1/groups/address/posts",
		"/api/v1/profiles/author/posts",
		"/api/v1/profiles/author/following",
		handler.PostURL(post.ID),
	} {
		w := app.get(path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{
		"/api/v1/groups/missing/posts",
		"/api/v1/profiles/missing/posts",
		"/api/v1/posts/999",
		"/api/v1/posts/abc",
		"/unexisting_page/",
	} {
		w := app.get(path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestAnonymousCreateRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/api/v1/posts", url.Values{"text": {"hello"}}, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next="+url.QueryEscape("/api/v1/posts"), w.Header().Get("Location"))
	assert.Zero(t, app.count(&model.Post{}))
}

func TestAnonymousWritesRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]

	paths := []string{
		handler.PostURL(post.ID) + "/edit",
		handler.PostURL(post.ID) + "/comments",
		"/api/v1/profiles/author/follow",
		"/api/v1/profiles/author/unfollow",
	}
	for _, path := range paths {
		w := app.postForm(path, url.Values{"text": {"x"}}, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login/?next="), path)
	}

	w := app.get("/api/v1/follow/posts", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next="+url.QueryEscape("/api/v1/follow/posts"), w.Header().Get("Location"))
}

func TestCreatePostRedirectsToProfile(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	group := testutil.CreateGroup(t, app.db, "cats")

	w := app.postForm("/api/v1/posts", url.Values{"text": {"new post"}, "group": {fmt.Sprint(group.ID)}}, author)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.ProfileURL("author"), w.Header().Get("Location"))
	var p model.Post
	require.NoError(t, app.db.First(&p).Error)
	assert.Equal(t, "new post", p.Text)
	assert.Equal(t, author.ID, p.AuthorID)
	require.NotNil(t, p.GroupID)
	assert.Equal(t, group.ID, *p.GroupID)
}

func TestCreatePostWithImageUpload(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "with image"))
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="small.gif"`},
		"Content-Type":        {"image/gif"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := app.do(req, author)

	assert.Equal(t, http.StatusFound, w.Code)
	var p model.Post
	require.NoError(t, app.db.First(&p).Error)
	assert.True(t, strings.HasPrefix(p.Image, "posts/"))
}

func TestCreatePostValidationFailure(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")

	w := app.postForm("/api/v1/posts", url.Values{"text": {""}, "group": {"nope"}}, author)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Contains(t, env.Fields, "text")
	assert.Zero(t, app.count(&model.Post{}))
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]

	w := app.postForm(handler.PostURL(post.ID)+"/edit", url.Values{"text": {"edited"}}, author)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.PostURL(post.ID), w.Header().Get("Location"))
	var got model.Post
	require.NoError(t, app.db.First(&got, post.ID).Error)
	assert.Equal(t, "edited", got.Text)
}

func TestEditPostByNonAuthorRedirectsWithoutChange(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	other := testutil.CreateUser(t, app.db, "other")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]

	w := app.postForm(handler.PostURL(post.ID)+"/edit", url.Values{"text": {"hijacked"}, "group": {"bogus"}}, other)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.PostURL(post.ID), w.Header().Get("Location"))
	var got model.Post
	require.NoError(t, app.db.First(&got, post.ID).Error)
	assert.Equal(t, post.Text, got.Text)
	assert.Nil(t, got.GroupID)
}

func TestAddCommentShowsOnDetail(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	reader := testutil.CreateUser(t, app.db, "reader")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]

	w := app.postForm(handler.PostURL(post.ID)+"/comments", url.Values{"text": {"nice post"}}, reader)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.PostURL(post.ID), w.Header().Get("Location"))

	w = app.get(handler.PostURL(post.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Comments        []model.Comment `json:"comments"`
		AuthorPostCount int64           `json:"author_post_count"`
	}
	decode(t, w, &detail)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "nice post", detail.Comments[0].Text)
	assert.Equal(t, int64(1), detail.AuthorPostCount)
}

func TestAddCommentTooLong(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]

	w := app.postForm(handler.PostURL(post.ID)+"/comments", url.Values{"text": {strings.Repeat("a", 201)}}, author)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w, nil).Fields, "text")
	assert.Zero(t, app.count(&model.Comment{}))
}

func TestFollowFlow(t *testing.T) {
	app := newTestApp(t)
	viewer := testutil.CreateUser(t, app.db, "viewer")
	author := testutil.CreateUser(t, app.db, "author")
	testutil.CreatePosts(t, app.db, author, nil, 2)

	for i := 0; i < 2; i++ {
		w := app.postForm("/api/v1/profiles/author/follow", nil, viewer)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, handler.ProfileURL("author"), w.Header().Get("Location"))
	}
	assert.Equal(t, int64(1), app.count(&model.Follow{}))

	var profile struct {
		Following bool `json:"following"`
	}
	decode(t, app.get("/api/v1/profiles/author/posts", viewer), &profile)
	assert.True(t, profile.Following)

	var feed struct {
		Items      []model.Post `json:"items"`
		TotalCount int64        `json:"total_count"`
	}
	decode(t, app.get("/api/v1/follow/posts", viewer), &feed)
	assert.Equal(t, int64(2), feed.TotalCount)

	w := app.postForm("/api/v1/profiles/author/unfollow", nil, viewer)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, app.count(&model.Follow{}))

	decode(t, app.get("/api/v1/follow/posts", viewer), &feed)
	assert.Empty(t, feed.Items)
}

func TestFollowSelfRedirectsWithoutEdge(t *testing.T) {
	app := newTestApp(t)
	viewer := testutil.CreateUser(t, app.db, "viewer")

	w := app.postForm("/api/v1/profiles/viewer/follow", nil, viewer)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.ProfileURL("viewer"), w.Header().Get("Location"))
	assert.Zero(t, app.count(&model.Follow{}))
}

func TestFollowUnknownUser(t *testing.T) {
	app := newTestApp(t)
	viewer := testutil.CreateUser(t, app.db, "viewer")

	w := app.postForm("/api/v1/profiles/ghost/follow", nil, viewer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGlobalFeedCacheInvalidatedOnCreate(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")

	var feed struct {
		TotalCount int64 `json:"total_count"`
	}
	decode(t, app.get("/api/v1/posts", nil), &feed)
	assert.Zero(t, feed.TotalCount)

	w := app.postForm("/api/v1/posts", url.Values{"text": {"fresh"}}, author)
	require.Equal(t, http.StatusFound, w.Code)

	decode(t, app.get("/api/v1/posts", nil), &feed)
	assert.Equal(t, int64(1), feed.TotalCount)
}

func TestGlobalFeedPages(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	testutil.CreatePosts(t, app.db, author, nil, 13)

	var page struct {
		Items       []model.Post `json:"items"`
		HasNext     bool         `json:"has_next"`
		HasPrevious bool         `json:"has_previous"`
	}
	decode(t, app.get("/api/v1/posts", nil), &page)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasNext)

	decode(t, app.get("/api/v1/posts?page=2", nil), &page)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrevious)
}

func TestCreatePostRedirectWithSubjectOnlyToken(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	tok, err := middleware.IssueToken([]byte(app.cfg.JWT.Secret), app.cfg.JWT.Issuer, author.ID, "", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(url.Values{"text": {"hi"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+tok)
	w := app.do(req, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/v1/profiles/author/posts", w.Header().Get("Location"))
}

// truncatedMultipart 缺少结束边界的 multipart 请求
func truncatedMultipart(path string) *http.Request {
	body := "--xyz\r\nContent-Disposition: form-data; name=\"text\"\r\n\r\nhijacked\r\n--xyz\r\nContent-Disposition: form-data; name=\"image\"; filename=\"a.gif\"\r\nContent-Type: image/gif\r\n\r\nGIF8"
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	return req
}

func TestEditPostMalformedUpload(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	other := testutil.CreateUser(t, app.db, "other")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]
	path := handler.PostURL(post.ID) + "/edit"

	w := app.do(truncatedMultipart(path), other)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, handler.PostURL(post.ID), w.Header().Get("Location"))

	w = app.do(truncatedMultipart(path), author)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w, nil).Fields)

	var got model.Post
	require.NoError(t, app.db.First(&got, post.ID).Error)
	assert.Equal(t, post.Text, got.Text)
}

func TestEditPostClearImageCheckbox(t *testing.T) {
	app := newTestApp(t)
	author := testutil.CreateUser(t, app.db, "author")
	post := testutil.CreatePosts(t, app.db, author, nil, 1)[0]
	require.NoError(t, app.db.Model(&model.Post{}).Where("id = ?", post.ID).Update("image", "posts/old.gif").Error)

	w := app.postForm(handler.PostURL(post.ID)+"/edit", url.Values{"text": {"edited"}, "image-clear": {"on"}}, author)

	assert.Equal(t, http.StatusFound, w.Code)
	var got model.Post
	require.NoError(t, app.db.First(&got, post.ID).Error)
	assert.Empty(t, got.Image)
	assert.Equal(t, "edited", got.Text)
}

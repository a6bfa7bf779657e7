package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"articlelike/cache"
	"articlelike/events"
	"articlelike/models"
	"articlelike/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.LikeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	db        *gorm.DB
	mr        *miniredis.Miniredis
	publisher *recordingPublisher
	engine    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &fixture{
		db:        testutil.NewDB(t),
		mr:        mr,
		publisher: &recordingPublisher{},
	}
	f.engine = SetupRouter(Deps{
		DB:      f.db,
		Counter: cache.NewLikeCounter(rdb),
		Events:  f.publisher,
	})
	return f
}

func (f *fixture) do(method, path string, userID uint, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-Id", fmt.Sprint(userID))
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

type likeBody struct {
	Like struct {
		ID        uint `json:"id"`
		UserID    uint `json:"user_id"`
		ArticleID uint `json:"article_id"`
	} `json:"like"`
}

type countBody struct {
	ArticleID uint  `json:"article_id"`
	Likes     int64 `json:"likes"`
}

type articleBody struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	LikeCount int64  `json:"like_count"`
	Likes     []struct {
		UserID uint `json:"user_id"`
	} `json:"likes"`
}

type listBody struct {
	List []articleBody `json:"list"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLikeArticle(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "test")
	article := testutil.CreateArticle(t, f.db, "test article")
	path := fmt.Sprintf("/api/articles/%d/like", article.ID)

	w := f.do(http.MethodPost, path, user.ID, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[likeBody](t, w)
	assert.NotZero(t, got.Like.ID)
	assert.Equal(t, user.ID, got.Like.UserID)
	assert.Equal(t, article.ID, got.Like.ArticleID)

	w = f.do(http.MethodPost, path, user.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.ActionLike, f.publisher.events[0].Action)
	assert.Equal(t, got.Like.ID, f.publisher.events[0].LikeID)
}

func TestLikeArticle_InvalidReferences(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "test")
	article := testutil.CreateArticle(t, f.db, "test article")

	w := f.do(http.MethodPost, "/api/articles/9988/like", user.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", article.ID), 4242, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(http.MethodPost, "/api/articles/abc/like", user.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, f.publisher.events)
}

func TestLikeArticle_RequiresUser(t *testing.T) {
	f := newFixture(t)
	article := testutil.CreateArticle(t, f.db, "test article")

	w := f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", article.ID), 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnlikeArticle_Idempotent(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "test")
	article := testutil.CreateArticle(t, f.db, "test article")
	path := fmt.Sprintf("/api/articles/%d/like", article.ID)
	countPath := fmt.Sprintf("/api/articles/%d/likes", article.ID)

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, path, user.ID, nil).Code)
	assert.Equal(t, int64(1), decode[countBody](t, f.do(http.MethodGet, countPath, 0, nil)).Likes)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, path, user.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, path, user.ID, nil).Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/articles/9988/like", user.ID, nil).Code)

	assert.Equal(t, int64(0), decode[countBody](t, f.do(http.MethodGet, countPath, 0, nil)).Likes)

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, path, user.ID, nil).Code)
	assert.Equal(t, int64(1), decode[countBody](t, f.do(http.MethodGet, countPath, 0, nil)).Likes)
}

func TestGetArticleLikes_WarmsCache(t *testing.T) {
	f := newFixture(t)
	users := []uint{
		testutil.CreateUser(t, f.db, "a").ID,
		testutil.CreateUser(t, f.db, "b").ID,
	}
	article := testutil.CreateArticle(t, f.db, "test article")
	for _, uid := range users {
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", article.ID), uid, nil).Code)
	}

	key := fmt.Sprintf("article:%d:likes", article.ID)
	assert.False(t, f.mr.Exists(key))

	got := decode[countBody](t, f.do(http.MethodGet, fmt.Sprintf("/api/articles/%d/likes", article.ID), 0, nil))
	assert.Equal(t, int64(2), got.Likes)

	cached, err := f.mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "2", cached)
}

func TestGetArticle(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "test")
	article := testutil.CreateArticle(t, f.db, "test_title")
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", article.ID), user.ID, nil).Code)

	w := f.do(http.MethodGet, fmt.Sprintf("/api/articles/%d", article.ID), 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[articleBody](t, w)
	assert.Equal(t, article.ID, got.ID)
	assert.Equal(t, "test_title", got.Title)
	assert.Equal(t, int64(1), got.LikeCount)

	w = f.do(http.MethodGet, "/api/articles/9988", 0, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListArticles(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, "test")
	articles := testutil.CreateArticles(t, f.db, 20)
	newest := articles[len(articles)-1]
	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", newest.ID), user.ID, nil).Code)

	w := f.do(http.MethodGet, "/api/articles?offset=0&limit=10", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[listBody](t, w)
	require.Len(t, got.List, 10)
	for i, a := range got.List {
		assert.Equal(t, uint(20-i), a.ID)
	}
	assert.Equal(t, int64(1), got.List[0].LikeCount)
	require.Len(t, got.List[0].Likes, 1)
	assert.Equal(t, user.ID, got.List[0].Likes[0].UserID)
	assert.Zero(t, got.List[1].LikeCount)

	got = decode[listBody](t, f.do(http.MethodGet, "/api/articles?offset=40", 0, nil))
	assert.Empty(t, got.List)

	for _, q := range []string{"limit=0", "limit=101", "offset=-1", "limit=x"} {
		w = f.do(http.MethodGet, "/api/articles?"+q, 0, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetTopArticles(t *testing.T) {
	f := newFixture(t)
	a := testutil.CreateUser(t, f.db, "a")
	b := testutil.CreateUser(t, f.db, "b")
	first := testutil.CreateArticle(t, f.db, "first")
	second := testutil.CreateArticle(t, f.db, "second")

	for _, like := range []struct{ user, article uint }{
		{a.ID, second.ID}, {b.ID, second.ID}, {a.ID, first.ID},
	} {
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", like.article), like.user, nil).Code)
	}

	w := f.do(http.MethodGet, "/api/rank/articles?top=5", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		List []struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
			Score int64  `json:"score"`
			Rank  int    `json:"rank"`
		} `json:"list"`
	}](t, w)
	require.Len(t, got.List, 2)
	assert.Equal(t, second.ID, got.List[0].ID)
	assert.Equal(t, "second", got.List[0].Title)
	assert.Equal(t, int64(2), got.List[0].Score)
	assert.Equal(t, 1, got.List[0].Rank)
	assert.Equal(t, first.ID, got.List[1].ID)
}

func TestSearchArticles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.Article{Title: "gorm preload", Content: "eager loading"}).Error)

	w := f.do(http.MethodPost, "/api/search", 0, map[string]any{"question": "eager"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "gorm preload")

	w = f.do(http.MethodPost, "/api/search", 0, map[string]any{"topk": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchArticles_CapsTopK(t *testing.T) {
	f := newFixture(t)
	testutil.CreateArticles(t, f.db, 105)

	w := f.do(http.MethodPost, "/api/search", 0, map[string]any{"question": "article", "topk": 100000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[struct {
		Sources []struct {
			ID uint `json:"id"`
		} `json:"sources"`
	}](t, w)
	assert.Len(t, got.Sources, 100)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/healthz", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_WithoutCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	engine := SetupRouter(Deps{DB: db})
	user := testutil.CreateUser(t, db, "test")
	article := testutil.CreateArticle(t, db, "test article")

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/articles/%d/like", article.ID), nil)
	req.Header.Set("X-User-Id", fmt.Sprint(user.ID))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/articles/%d/likes", article.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"article_id":%d,"likes":1}`, article.ID), w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rank/articles", nil))
	assert.JSONEq(t, `{"list":[]}`, w.Body.String())
}

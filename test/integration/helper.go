package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appauthor "github.com/takinabradley/mdn-local-library/internal/application/author"
	appbook "github.com/takinabradley/mdn-local-library/internal/application/book"
	appgenre "github.com/takinabradley/mdn-local-library/internal/application/genre"
	"github.com/takinabradley/mdn-local-library/internal/domain/bookinstance"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/persistence/mysql"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/handler"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/router"
)

// 教学说明：集成测试辅助工具
// 与单元测试不同，这里组装完整的应用(真实仓储+真实路由)，
// 只把MySQL换成内存SQLite、省略Redis(详情缓存为nil自动退化)，
// 通过httptest在进程内走完整的HTTP请求链路

// App 进程内测试应用
type App struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Instances bookinstance.Repository
}

// NewApp 组装测试应用
func NewApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))

	genreRepo := mysql.NewGenreRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	instanceRepo := mysql.NewInstanceRepository(db)

	genreHandler := handler.NewGenreHandler(appgenre.NewLifecycle(genreRepo, bookRepo))
	authorHandler := handler.NewAuthorHandler(appauthor.NewLifecycle(authorRepo, bookRepo))
	bookHandler := handler.NewBookHandler(appbook.NewLifecycle(bookRepo, authorRepo, genreRepo, instanceRepo, nil))

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.Port = 8080

	return &App{
		Engine:    router.New(cfg, genreHandler, authorHandler, bookHandler),
		DB:        db,
		Instances: instanceRepo,
	}
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RenderData 渲染结果信封
type RenderData struct {
	View string                 `json:"view"`
	Data map[string]interface{} `json:"data"`
}

// Get 发送GET请求
func (a *App) Get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

// PostForm 发送表单POST请求
func (a *App) PostForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

// DecodeRender 解析200响应中的渲染结果
func DecodeRender(t *testing.T, w *httptest.ResponseRecorder) *RenderData {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, "响应体: %s", w.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code, "业务错误: %s", resp.Message)

	var render RenderData
	require.NoError(t, json.Unmarshal(resp.Data, &render))
	return &render
}

// RequireRedirect 断言302重定向并返回Location
func RequireRedirect(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, "响应体: %s", w.Body.String())
	return w.Header().Get("Location")
}

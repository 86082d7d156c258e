package book

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/takinabradley/mdn-local-library/internal/application/flow"
	"github.com/takinabradley/mdn-local-library/internal/domain/author"
	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	"github.com/takinabradley/mdn-local-library/internal/domain/bookinstance"
	"github.com/takinabradley/mdn-local-library/internal/domain/genre"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
	"github.com/takinabradley/mdn-local-library/pkg/metrics"
	"github.com/takinabradley/mdn-local-library/pkg/webform"
)

// DetailCache 图书详情缓存(Cache-Aside)
// 设计说明:
// 1. 读路径:先查缓存,未命中查数据库并回填
// 2. 写路径:更新/删除后删除缓存(不更新缓存,避免并发写导致的不一致)
// 3. 缓存故障只记日志不影响读写,核心流程不依赖缓存可用性
type DetailCache interface {
	// GetBook 读取缓存,未命中返回(nil, nil)
	GetBook(ctx context.Context, id uint) (*book.Book, error)

	// SetBook 写入缓存
	SetBook(ctx context.Context, b *book.Book) error

	// DeleteBook 删除缓存
	DeleteBook(ctx context.Context, id uint) error
}

// Lifecycle 图书生命周期控制器
// 与genre/author同构;额外职责:
// 1. 创建/更新时校验弱引用(AuthorID/GenreID)指向的记录确实存在,
//    不存在按表单校验错误处理(回显),不作为失败上抛
// 2. 删除由馆藏副本(BookInstance)引用检查把关
// 3. 详情读取走Cache-Aside缓存
type Lifecycle struct {
	books     book.Repository
	authors   author.Repository
	genres    genre.Repository
	instances bookinstance.Repository
	cache     DetailCache // 可为nil(未配置缓存时)
}

// NewLifecycle 创建图书生命周期控制器
func NewLifecycle(
	books book.Repository,
	authors author.Repository,
	genres genre.Repository,
	instances bookinstance.Repository,
	cache DetailCache,
) *Lifecycle {
	return &Lifecycle{
		books:     books,
		authors:   authors,
		genres:    genres,
		instances: instances,
		cache:     cache,
	}
}

// View 详情视图投影(关联的作者/类型名称查库补全)
type View struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	ISBN       string `json:"isbn"`
	AuthorID   uint   `json:"author_id"`
	GenreID    uint   `json:"genre_id"`
	AuthorName string `json:"author_name,omitempty"`
	GenreName  string `json:"genre_name,omitempty"`
	URL        string `json:"url"`
}

// InstanceView 馆藏副本视图投影
type InstanceView struct {
	ID      uint   `json:"id"`
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
	DueBack string `json:"due_back"`
	URL     string `json:"url"`
}

func toView(b *book.Book) View {
	return View{
		ID:       b.ID,
		Title:    b.Title,
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		AuthorID: b.AuthorID,
		GenreID:  b.GenreID,
		URL:      b.URL(),
	}
}

func toInstanceViews(instances []*bookinstance.Instance) []InstanceView {
	views := make([]InstanceView, 0, len(instances))
	for _, i := range instances {
		views = append(views, InstanceView{
			ID:      i.ID,
			Imprint: i.Imprint,
			Status:  string(i.Status),
			DueBack: i.DueBackFormatted(),
			URL:     i.URL(),
		})
	}
	return views
}

// List 列表:全部图书的最小投影,按书名升序
func (lc *Lifecycle) List(ctx context.Context) (flow.Result, error) {
	books, err := lc.books.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]book.SummaryView, 0, len(books))
	for _, b := range books {
		views = append(views, b.ToSummary())
	}

	return flow.Render{
		View: "book_list",
		Data: map[string]any{
			"title":     "Book List",
			"book_list": views,
		},
	}, nil
}

// Detail 详情:图书(经缓存)与其馆藏副本并发读取(StrictExistence)
// 渲染前再补全作者/类型名称;弱引用悬空时名称留空,不视为失败
func (lc *Lifecycle) Detail(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, book.ErrBookNotFound
	}

	var (
		b         *book.Book
		instances []*bookinstance.Instance
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		b, err = lc.cachedFind(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		instances, err = lc.instances.FindByBookID(egCtx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	view := toView(b)
	if a, err := lc.authors.FindByID(ctx, b.AuthorID); err == nil {
		view.AuthorName = a.Name()
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if g, err := lc.genres.FindByID(ctx, b.GenreID); err == nil {
		view.GenreName = g.Name
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	return flow.Render{
		View: "book_detail",
		Data: map[string]any{
			"title":          "Book Detail",
			"book":           view,
			"book_instances": toInstanceViews(instances),
		},
	}, nil
}

// CreateForm 创建表单(GET)
func (lc *Lifecycle) CreateForm() flow.Result {
	return flow.Render{
		View: "book_form",
		Data: map[string]any{
			"title":  "Create Book",
			"book":   nil,
			"errors": []string{},
		},
	}
}

// Create 创建(POST):校验(含弱引用存在性) → 按书名重复检测 → 写入
func (lc *Lifecycle) Create(ctx context.Context, form book.Form) (flow.Result, error) {
	candidate, errs := book.ParseForm(form)
	if !errs.HasErrors() {
		refErrs, err := lc.checkReferences(ctx, candidate)
		if err != nil {
			return nil, err
		}
		errs = refErrs
	}
	if errs.HasErrors() {
		return flow.Render{
			View: "book_form",
			Data: map[string]any{
				"title":  "Create Book",
				"book":   toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Title); err != nil {
		return nil, err
	} else if existing != nil {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "book"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.books.Create(ctx, candidate); err != nil {
		if errors.Is(err, book.ErrTitleDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Title)
		}
		return nil, err
	}

	return flow.Redirect{Path: candidate.URL()}, nil
}

// UpdateForm 更新表单(GET):预填充当前字段值(StrictExistence)
func (lc *Lifecycle) UpdateForm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, book.ErrBookNotFound
	}

	b, err := lc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return flow.Render{
		View: "book_form",
		Data: map[string]any{
			"title":  "Update Book",
			"book":   toView(b),
			"errors": []string{},
		},
	}, nil
}

// Update 更新(POST):候选实体保留原ID;写入成功后删除详情缓存
func (lc *Lifecycle) Update(ctx context.Context, rawID string, form book.Form) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, book.ErrBookNotFound
	}

	candidate, errs := book.ParseForm(form)
	candidate.ID = id
	if !errs.HasErrors() {
		refErrs, err := lc.checkReferences(ctx, candidate)
		if err != nil {
			return nil, err
		}
		errs = refErrs
	}
	if errs.HasErrors() {
		return flow.Render{
			View: "book_form",
			Data: map[string]any{
				"title":  "Update Book",
				"book":   toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Title); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "book"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.books.Update(ctx, candidate); err != nil {
		if errors.Is(err, book.ErrTitleDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Title)
		}
		return nil, err
	}

	lc.invalidate(ctx, id)
	return flow.Redirect{Path: candidate.URL()}, nil
}

// DeleteConfirm 删除确认(GET):IdempotentAbsence,引用列表为馆藏副本
func (lc *Lifecycle) DeleteConfirm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: book.ListURL}, nil
	}

	b, instances, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: book.ListURL}, nil
		}
		return nil, err
	}

	return lc.renderDeleteConfirm(b, instances), nil
}

// Delete 删除(POST):重新读取后,仍有馆藏副本则拒绝;删除成功后清缓存
func (lc *Lifecycle) Delete(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: book.ListURL}, nil
	}

	b, instances, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: book.ListURL}, nil
		}
		return nil, err
	}

	if len(instances) > 0 {
		metrics.IncCounterVec(metrics.DeletesBlockedTotal, map[string]string{"entity": "book"})
		return lc.renderDeleteConfirm(b, instances), nil
	}

	if err := lc.books.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: book.ListURL}, nil
		}
		return nil, err
	}

	lc.invalidate(ctx, id)
	return flow.Redirect{Path: book.ListURL}, nil
}

// checkReferences 校验弱引用指向的记录存在
// 不存在按校验错误处理(回显表单),存储故障才上抛
func (lc *Lifecycle) checkReferences(ctx context.Context, candidate *book.Book) (webform.Errors, error) {
	var errs webform.Errors

	if _, err := lc.authors.FindByID(ctx, candidate.AuthorID); err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		errs.Add("所选作者不存在")
	}

	if _, err := lc.genres.FindByID(ctx, candidate.GenreID); err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		errs.Add("所选图书类型不存在")
	}

	return errs, nil
}

// cachedFind Cache-Aside读取:缓存故障降级为直查数据库
func (lc *Lifecycle) cachedFind(ctx context.Context, id uint) (*book.Book, error) {
	if lc.cache != nil {
		cached, err := lc.cache.GetBook(ctx, id)
		if err != nil {
			log.Printf("读取图书缓存失败 id=%d err=%v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	b, err := lc.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if lc.cache != nil {
		if err := lc.cache.SetBook(ctx, b); err != nil {
			log.Printf("写入图书缓存失败 id=%d err=%v", id, err)
		}
	}
	return b, nil
}

// invalidate 写路径的缓存失效,失败只记日志
func (lc *Lifecycle) invalidate(ctx context.Context, id uint) {
	if lc.cache == nil {
		return
	}
	if err := lc.cache.DeleteBook(ctx, id); err != nil {
		log.Printf("删除图书缓存失败 id=%d err=%v", id, err)
	}
}

func (lc *Lifecycle) fetchWithReferences(ctx context.Context, id uint) (*book.Book, []*bookinstance.Instance, error) {
	var (
		b         *book.Book
		instances []*bookinstance.Instance
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		b, err = lc.books.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		instances, err = lc.instances.FindByBookID(egCtx, id)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return b, instances, nil
}

func (lc *Lifecycle) resolveDuplicate(ctx context.Context, title string) (*book.Book, error) {
	existing, err := lc.books.FindByTitle(ctx, title)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

func (lc *Lifecycle) redirectToExisting(ctx context.Context, title string) (flow.Result, error) {
	existing, err := lc.books.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "book"})
	return flow.Redirect{Path: existing.URL()}, nil
}

func (lc *Lifecycle) renderDeleteConfirm(b *book.Book, instances []*bookinstance.Instance) flow.Result {
	return flow.Render{
		View: "book_delete",
		Data: map[string]any{
			"title":          "Delete Book",
			"book":           toView(b),
			"book_instances": toInstanceViews(instances),
		},
	}
}

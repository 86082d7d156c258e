package genre

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/takinabradley/mdn-local-library/internal/application/flow"
	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	"github.com/takinabradley/mdn-local-library/internal/domain/genre"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
	"github.com/takinabradley/mdn-local-library/pkg/metrics"
)

// Lifecycle 图书类型生命周期控制器
// 设计说明:
// 1. 编排校验器、重复检测、引用检查与仓储,是唯一包含分支策略的组件
// 2. 创建/更新是严格串行的两阶段流水线:校验 → 重复检测 → 写入
//    (写入决策依赖重复检测结果,二者不可并行,否则并发提交会破坏唯一性不变量;
//    仓储层的归一化键唯一索引是并发竞争下的兜底,冲突转化为重定向到已有记录)
// 3. 详情/删除确认的两次独立读取并发发出,全部完成后才渲染,不渲染部分结果
// 4. 不存在策略:详情与更新表单为StrictExistence,删除流程为IdempotentAbsence
type Lifecycle struct {
	genres genre.Repository
	books  book.Repository
}

// NewLifecycle 创建图书类型生命周期控制器
func NewLifecycle(genres genre.Repository, books book.Repository) *Lifecycle {
	return &Lifecycle{genres: genres, books: books}
}

// View 视图投影
type View struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func toView(g *genre.Genre) View {
	return View{ID: g.ID, Name: g.Name, URL: g.URL()}
}

// List 列表:全部图书类型,按名称升序;空存储返回空列表
func (lc *Lifecycle) List(ctx context.Context) (flow.Result, error) {
	genres, err := lc.genres.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(genres))
	for _, g := range genres {
		views = append(views, toView(g))
	}

	return flow.Render{
		View: "genre_list",
		Data: map[string]any{
			"title":      "Genre List",
			"genre_list": views,
		},
	}, nil
}

// Detail 详情:实体与其关联图书并发读取,全部完成后渲染
// 标识符格式非法或记录不存在均上抛NotFound(StrictExistence)
func (lc *Lifecycle) Detail(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, genre.ErrGenreNotFound
	}

	g, booksInGenre, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		return nil, err
	}

	return flow.Render{
		View: "genre_detail",
		Data: map[string]any{
			"title":       "Genre Detail",
			"genre":       toView(g),
			"genre_books": toSummaries(booksInGenre),
		},
	}, nil
}

// CreateForm 创建表单(GET):空表单描述符,不访问存储
func (lc *Lifecycle) CreateForm() flow.Result {
	return flow.Render{
		View: "genre_form",
		Data: map[string]any{
			"title":  "Create Genre",
			"genre":  nil,
			"errors": []string{},
		},
	}
}

// Create 创建(POST):校验 → 重复检测 → 写入
// 校验失败:回显清洗后的值与错误列表,不写存储
// 自然键重复:丢弃候选实体,重定向到已有记录的详情页(幂等创建)
func (lc *Lifecycle) Create(ctx context.Context, form genre.Form) (flow.Result, error) {
	candidate, errs := genre.ParseForm(form)
	if errs.HasErrors() {
		return flow.Render{
			View: "genre_form",
			Data: map[string]any{
				"title":  "Create Genre",
				"genre":  toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Name); err != nil {
		return nil, err
	} else if existing != nil {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "genre"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.genres.Create(ctx, candidate); err != nil {
		// 并发竞争下唯一索引兜底触发:改为重定向到竞争获胜的记录
		if errors.Is(err, genre.ErrNameDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Name)
		}
		return nil, err
	}

	return flow.Redirect{Path: candidate.URL()}, nil
}

// UpdateForm 更新表单(GET):按当前字段值预填充,错误列表为空
// 记录不存在上抛NotFound(StrictExistence,策略上不同于删除流程)
func (lc *Lifecycle) UpdateForm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, genre.ErrGenreNotFound
	}

	g, err := lc.genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return flow.Render{
		View: "genre_form",
		Data: map[string]any{
			"title":  "Update Genre",
			"genre":  toView(g),
			"errors": []string{},
		},
	}, nil
}

// Update 更新(POST):与创建同构,但候选实体保留原ID
// 新名称已被另一条记录占用时:重定向到该记录,不写存储
// (防止通过改名制造两条同名记录);占用者是自身时照常覆盖写入
func (lc *Lifecycle) Update(ctx context.Context, rawID string, form genre.Form) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, genre.ErrGenreNotFound
	}

	candidate, errs := genre.ParseForm(form)
	candidate.ID = id // 身份保留,校验失败时表单仍指向原记录
	if errs.HasErrors() {
		return flow.Render{
			View: "genre_form",
			Data: map[string]any{
				"title":  "Update Genre",
				"genre":  toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Name); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "genre"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.genres.Update(ctx, candidate); err != nil {
		if errors.Is(err, genre.ErrNameDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Name)
		}
		return nil, err
	}

	return flow.Redirect{Path: candidate.URL()}, nil
}

// DeleteConfirm 删除确认(GET):并发读取实体与引用它的图书
// 记录不存在(含格式非法的ID)时静默重定向到列表页(IdempotentAbsence)
func (lc *Lifecycle) DeleteConfirm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: genre.ListURL}, nil
	}

	g, booksInGenre, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: genre.ListURL}, nil
		}
		return nil, err
	}

	return lc.renderDeleteConfirm(g, booksInGenre), nil
}

// Delete 删除(POST):重新读取实体与引用列表(不信任确认页的快照)
// 仍有引用图书时拒绝删除并重新渲染确认页;引用为空才删除并重定向列表页
func (lc *Lifecycle) Delete(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: genre.ListURL}, nil
	}

	g, booksInGenre, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: genre.ListURL}, nil
		}
		return nil, err
	}

	if len(booksInGenre) > 0 {
		metrics.IncCounterVec(metrics.DeletesBlockedTotal, map[string]string{"entity": "genre"})
		return lc.renderDeleteConfirm(g, booksInGenre), nil
	}

	if err := lc.genres.Delete(ctx, id); err != nil {
		// 确认与删除之间被他人删除:幂等语义下同样视为已完成
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: genre.ListURL}, nil
		}
		return nil, err
	}

	return flow.Redirect{Path: genre.ListURL}, nil
}

// fetchWithReferences 并发读取实体与引用它的图书,两次读取全部完成才返回
// 任一读取失败则整个操作失败,不返回部分数据
func (lc *Lifecycle) fetchWithReferences(ctx context.Context, id uint) (*genre.Genre, []*book.Book, error) {
	var (
		g            *genre.Genre
		booksInGenre []*book.Book
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = lc.genres.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		booksInGenre, err = lc.books.FindByGenreID(egCtx, id)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return g, booksInGenre, nil
}

// resolveDuplicate 重复检测:按归一化自然键查找已有记录
// 未找到不是错误,返回(nil, nil)
func (lc *Lifecycle) resolveDuplicate(ctx context.Context, name string) (*genre.Genre, error) {
	existing, err := lc.genres.FindByName(ctx, name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// redirectToExisting 唯一索引兜底触发后,重定向到持有该名称的记录
func (lc *Lifecycle) redirectToExisting(ctx context.Context, name string) (flow.Result, error) {
	existing, err := lc.genres.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "genre"})
	return flow.Redirect{Path: existing.URL()}, nil
}

func (lc *Lifecycle) renderDeleteConfirm(g *genre.Genre, booksInGenre []*book.Book) flow.Result {
	return flow.Render{
		View: "genre_delete",
		Data: map[string]any{
			"title":       "Delete Genre",
			"genre":       toView(g),
			"genre_books": toSummaries(booksInGenre),
		},
	}
}

func toSummaries(books []*book.Book) []book.SummaryView {
	views := make([]book.SummaryView, 0, len(books))
	for _, b := range books {
		views = append(views, b.ToSummary())
	}
	return views
}

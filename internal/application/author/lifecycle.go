package author

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/takinabradley/mdn-local-library/internal/application/flow"
	"github.com/takinabradley/mdn-local-library/internal/domain/author"
	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
	"github.com/takinabradley/mdn-local-library/pkg/metrics"
)

// Lifecycle 作者生命周期控制器
// 与genre.Lifecycle同构:校验 → 重复检测 → 写入的串行流水线,
// 详情/删除确认并发读取实体与引用图书,删除被名下图书引用的作者会被拒绝
// 作者的自然键是派生展示名"姓, 名"(两个必填字段拼成,校验通过后必非空)
type Lifecycle struct {
	authors author.Repository
	books   book.Repository
}

// NewLifecycle 创建作者生命周期控制器
func NewLifecycle(authors author.Repository, books book.Repository) *Lifecycle {
	return &Lifecycle{authors: authors, books: books}
}

// View 视图投影(含全部派生日期格式,供表单预填充与详情展示)
type View struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	FirstName      string `json:"first_name"`
	FamilyName     string `json:"family_name"`
	DateOfBirth    string `json:"date_of_birth"`     // YYYY-MM-DD,未填写为空串
	DateOfDeath    string `json:"date_of_death"`     // YYYY-MM-DD,未填写为空串
	BirthFormatted string `json:"birth_formatted"`   // 可读格式
	DeathFormatted string `json:"death_formatted"`   // 可读格式
	Lifespan       string `json:"lifespan"`
	URL            string `json:"url"`
}

func toView(a *author.Author) View {
	return View{
		ID:             a.ID,
		Name:           a.Name(),
		FirstName:      a.FirstName,
		FamilyName:     a.FamilyName,
		DateOfBirth:    a.BirthISO(),
		DateOfDeath:    a.DeathISO(),
		BirthFormatted: a.BirthFormatted(),
		DeathFormatted: a.DeathFormatted(),
		Lifespan:       a.Lifespan(),
		URL:            a.URL(),
	}
}

// List 列表:全部作者,按姓氏+名字升序
func (lc *Lifecycle) List(ctx context.Context) (flow.Result, error) {
	authors, err := lc.authors.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(authors))
	for _, a := range authors {
		views = append(views, toView(a))
	}

	return flow.Render{
		View: "author_list",
		Data: map[string]any{
			"title":       "Author List",
			"author_list": views,
		},
	}, nil
}

// Detail 详情:作者与其名下图书并发读取(StrictExistence)
func (lc *Lifecycle) Detail(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	a, authorBooks, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		return nil, err
	}

	return flow.Render{
		View: "author_detail",
		Data: map[string]any{
			"title":        "Author Detail",
			"author":       toView(a),
			"author_books": toSummaries(authorBooks),
		},
	}, nil
}

// CreateForm 创建表单(GET)
func (lc *Lifecycle) CreateForm() flow.Result {
	return flow.Render{
		View: "author_form",
		Data: map[string]any{
			"title":  "Create Author",
			"author": nil,
			"errors": []string{},
		},
	}
}

// Create 创建(POST):校验 → 按展示名重复检测 → 写入
func (lc *Lifecycle) Create(ctx context.Context, form author.Form) (flow.Result, error) {
	candidate, errs := author.ParseForm(form)
	if errs.HasErrors() {
		return flow.Render{
			View: "author_form",
			Data: map[string]any{
				"title":  "Create Author",
				"author": toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Name()); err != nil {
		return nil, err
	} else if existing != nil {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "author"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.authors.Create(ctx, candidate); err != nil {
		if errors.Is(err, author.ErrNameDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Name())
		}
		return nil, err
	}

	return flow.Redirect{Path: candidate.URL()}, nil
}

// UpdateForm 更新表单(GET):预填充当前字段值(StrictExistence)
func (lc *Lifecycle) UpdateForm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	a, err := lc.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return flow.Render{
		View: "author_form",
		Data: map[string]any{
			"title":  "Update Author",
			"author": toView(a),
			"errors": []string{},
		},
	}, nil
}

// Update 更新(POST):候选实体保留原ID;新展示名被他人占用时重定向不写入
func (lc *Lifecycle) Update(ctx context.Context, rawID string, form author.Form) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	candidate, errs := author.ParseForm(form)
	candidate.ID = id
	if errs.HasErrors() {
		return flow.Render{
			View: "author_form",
			Data: map[string]any{
				"title":  "Update Author",
				"author": toView(candidate),
				"errors": errs.Messages(),
			},
		}, nil
	}

	if existing, err := lc.resolveDuplicate(ctx, candidate.Name()); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != id {
		metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "author"})
		return flow.Redirect{Path: existing.URL()}, nil
	}

	if err := lc.authors.Update(ctx, candidate); err != nil {
		if errors.Is(err, author.ErrNameDuplicate) {
			return lc.redirectToExisting(ctx, candidate.Name())
		}
		return nil, err
	}

	return flow.Redirect{Path: candidate.URL()}, nil
}

// DeleteConfirm 删除确认(GET):IdempotentAbsence
func (lc *Lifecycle) DeleteConfirm(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: author.ListURL}, nil
	}

	a, authorBooks, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: author.ListURL}, nil
		}
		return nil, err
	}

	return lc.renderDeleteConfirm(a, authorBooks), nil
}

// Delete 删除(POST):重新读取后,名下仍有图书则拒绝,否则删除
func (lc *Lifecycle) Delete(ctx context.Context, rawID string) (flow.Result, error) {
	id, ok := flow.ParseID(rawID)
	if !ok {
		return flow.Redirect{Path: author.ListURL}, nil
	}

	a, authorBooks, err := lc.fetchWithReferences(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: author.ListURL}, nil
		}
		return nil, err
	}

	if len(authorBooks) > 0 {
		metrics.IncCounterVec(metrics.DeletesBlockedTotal, map[string]string{"entity": "author"})
		return lc.renderDeleteConfirm(a, authorBooks), nil
	}

	if err := lc.authors.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return flow.Redirect{Path: author.ListURL}, nil
		}
		return nil, err
	}

	return flow.Redirect{Path: author.ListURL}, nil
}

func (lc *Lifecycle) fetchWithReferences(ctx context.Context, id uint) (*author.Author, []*book.Book, error) {
	var (
		a           *author.Author
		authorBooks []*book.Book
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		a, err = lc.authors.FindByID(egCtx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		authorBooks, err = lc.books.FindByAuthorID(egCtx, id)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return a, authorBooks, nil
}

func (lc *Lifecycle) resolveDuplicate(ctx context.Context, name string) (*author.Author, error) {
	existing, err := lc.authors.FindByName(ctx, name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

func (lc *Lifecycle) redirectToExisting(ctx context.Context, name string) (flow.Result, error) {
	existing, err := lc.authors.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	metrics.IncCounterVec(metrics.DuplicateRedirectsTotal, map[string]string{"entity": "author"})
	return flow.Redirect{Path: existing.URL()}, nil
}

func (lc *Lifecycle) renderDeleteConfirm(a *author.Author, authorBooks []*book.Book) flow.Result {
	return flow.Render{
		View: "author_delete",
		Data: map[string]any{
			"title":        "Delete Author",
			"author":       toView(a),
			"author_books": toSummaries(authorBooks),
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

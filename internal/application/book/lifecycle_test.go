package book

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takinabradley/mdn-local-library/internal/application/flow"
	"github.com/takinabradley/mdn-local-library/internal/domain/author"
	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	"github.com/takinabradley/mdn-local-library/internal/domain/bookinstance"
	"github.com/takinabradley/mdn-local-library/internal/domain/genre"
	"github.com/takinabradley/mdn-local-library/pkg/collation"
)

// =========================================
// 内存版仓储与缓存(测试替身)
// =========================================

type fakeBookRepo struct {
	nextID uint
	byID   map[uint]*book.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{byID: map[uint]*book.Book{}}
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	for _, existing := range r.byID {
		if collation.Equal(existing.Title, b.Title) {
			return book.ErrTitleDuplicate
		}
	}
	r.nextID++
	b.ID = r.nextID
	stored := *b
	r.byID[b.ID] = &stored
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) FindByTitle(_ context.Context, title string) (*book.Book, error) {
	for _, b := range r.byID {
		if collation.Equal(b.Title, title) {
			copied := *b
			return &copied, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindByGenreID(_ context.Context, genreID uint) ([]*book.Book, error) {
	out := []*book.Book{}
	for _, b := range r.byID {
		if b.GenreID == genreID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) FindByAuthorID(_ context.Context, authorID uint) ([]*book.Book, error) {
	out := []*book.Book{}
	for _, b := range r.byID {
		if b.AuthorID == authorID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	stored := *b
	r.byID[b.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeBookRepo) List(_ context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, 0, len(r.byID))
	for _, b := range r.byID {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type fakeAuthorRepo struct {
	byID map[uint]*author.Author
}

func (r *fakeAuthorRepo) Create(_ context.Context, _ *author.Author) error { return nil }
func (r *fakeAuthorRepo) FindByID(_ context.Context, id uint) (*author.Author, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}
func (r *fakeAuthorRepo) FindByName(_ context.Context, _ string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}
func (r *fakeAuthorRepo) Update(_ context.Context, _ *author.Author) error { return nil }
func (r *fakeAuthorRepo) Delete(_ context.Context, _ uint) error           { return nil }
func (r *fakeAuthorRepo) List(_ context.Context) ([]*author.Author, error) {
	return nil, nil
}

type fakeGenreRepo struct {
	byID map[uint]*genre.Genre
}

func (r *fakeGenreRepo) Create(_ context.Context, _ *genre.Genre) error { return nil }
func (r *fakeGenreRepo) FindByID(_ context.Context, id uint) (*genre.Genre, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return g, nil
}
func (r *fakeGenreRepo) FindByName(_ context.Context, _ string) (*genre.Genre, error) {
	return nil, genre.ErrGenreNotFound
}
func (r *fakeGenreRepo) Update(_ context.Context, _ *genre.Genre) error { return nil }
func (r *fakeGenreRepo) Delete(_ context.Context, _ uint) error         { return nil }
func (r *fakeGenreRepo) List(_ context.Context) ([]*genre.Genre, error) { return nil, nil }

type fakeInstanceRepo struct {
	instances []*bookinstance.Instance
}

func (r *fakeInstanceRepo) Create(_ context.Context, _ *bookinstance.Instance) error { return nil }
func (r *fakeInstanceRepo) FindByID(_ context.Context, _ uint) (*bookinstance.Instance, error) {
	return nil, bookinstance.ErrInstanceNotFound
}
func (r *fakeInstanceRepo) FindByBookID(_ context.Context, bookID uint) ([]*bookinstance.Instance, error) {
	out := []*bookinstance.Instance{}
	for _, i := range r.instances {
		if i.BookID == bookID {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *fakeInstanceRepo) Delete(_ context.Context, _ uint) error { return nil }

// fakeCache 记录调用轨迹,可注入故障
type fakeCache struct {
	data    map[uint]*book.Book
	sets    int
	deletes int
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[uint]*book.Book{}}
}

func (c *fakeCache) GetBook(_ context.Context, id uint) (*book.Book, error) {
	if c.failing {
		return nil, errors.New("cache down")
	}
	b, ok := c.data[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (c *fakeCache) SetBook(_ context.Context, b *book.Book) error {
	if c.failing {
		return errors.New("cache down")
	}
	c.sets++
	copied := *b
	c.data[b.ID] = &copied
	return nil
}

func (c *fakeCache) DeleteBook(_ context.Context, id uint) error {
	if c.failing {
		return errors.New("cache down")
	}
	c.deletes++
	delete(c.data, id)
	return nil
}

type fixture struct {
	lc        *Lifecycle
	books     *fakeBookRepo
	authors   *fakeAuthorRepo
	genres    *fakeGenreRepo
	instances *fakeInstanceRepo
	cache     *fakeCache
}

func newFixture() *fixture {
	f := &fixture{
		books: newFakeBookRepo(),
		authors: &fakeAuthorRepo{byID: map[uint]*author.Author{
			1: {ID: 1, FirstName: "Patrick", FamilyName: "Rothfuss"},
		}},
		genres: &fakeGenreRepo{byID: map[uint]*genre.Genre{
			1: {ID: 1, Name: "Fantasy"},
		}},
		instances: &fakeInstanceRepo{},
		cache:     newFakeCache(),
	}
	f.lc = NewLifecycle(f.books, f.authors, f.genres, f.instances, f.cache)
	return f
}

func validForm() book.Form {
	return book.Form{
		Title:    "The Name of the Wind",
		Summary:  "弑君者三部曲第一部",
		ISBN:     "9780756404741",
		AuthorID: "1",
		GenreID:  "1",
	}
}

// =========================================
// 测试
// =========================================

// TestCreateAndDetail 创建后详情包含补全的作者/类型名称
func TestCreateAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	result, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, "/catalog/book/1", result.(flow.Redirect).Path)

	detail, err := f.lc.Detail(ctx, "1")
	require.NoError(t, err)

	render := detail.(flow.Render)
	view := render.Data["book"].(View)
	assert.Equal(t, "The Name of the Wind", view.Title)
	assert.Equal(t, "Rothfuss, Patrick", view.AuthorName)
	assert.Equal(t, "Fantasy", view.GenreName)
	assert.Empty(t, render.Data["book_instances"])
}

// TestCreateDanglingReferences 引用不存在:按校验错误回显,不写存储
func TestCreateDanglingReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	form := validForm()
	form.AuthorID = "99"
	form.GenreID = "99"
	result, err := f.lc.Create(ctx, form)
	require.NoError(t, err)

	render := result.(flow.Render)
	assert.Equal(t, "book_form", render.View)
	messages := render.Data["errors"].([]string)
	assert.Contains(t, messages, "所选作者不存在")
	assert.Contains(t, messages, "所选图书类型不存在")
	assert.Len(t, f.books.byID, 0)
}

// TestCreateDuplicateTitle 书名忽略大小写去重:重定向到已有图书
func TestCreateDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)

	dup := validForm()
	dup.Title = "THE NAME OF THE WIND"
	result, err := f.lc.Create(ctx, dup)
	require.NoError(t, err)

	require.IsType(t, flow.Redirect{}, result)
	assert.Equal(t, "/catalog/book/1", result.(flow.Redirect).Path)
	assert.Len(t, f.books.byID, 1)
}

// TestCreateValidationGate ISBN等字段校验失败时回显
func TestCreateValidationGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	form := validForm()
	form.ISBN = "not-an-isbn"
	result, err := f.lc.Create(ctx, form)
	require.NoError(t, err)

	render := result.(flow.Render)
	assert.Equal(t, "book_form", render.View)
	assert.NotEmpty(t, render.Data["errors"])
	assert.Len(t, f.books.byID, 0)
}

// TestDetailCacheAside 首次详情回填缓存,再次详情命中缓存
func TestDetailCacheAside(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)

	_, err = f.lc.Detail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	// 命中缓存:即使底层记录被改名,读到的仍是缓存值
	f.books.byID[1].Title = "changed behind cache"
	detail, err := f.lc.Detail(ctx, "1")
	require.NoError(t, err)
	view := detail.(flow.Render).Data["book"].(View)
	assert.Equal(t, "The Name of the Wind", view.Title)
	assert.Equal(t, 1, f.cache.sets)
}

// TestDetailCacheFailureDegrades 缓存故障时详情降级为直查数据库
func TestDetailCacheFailureDegrades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	f.cache.failing = true

	detail, err := f.lc.Detail(ctx, "1")
	require.NoError(t, err)
	view := detail.(flow.Render).Data["book"].(View)
	assert.Equal(t, "The Name of the Wind", view.Title)
}

// TestDetailNilCache 未配置缓存时详情可用
func TestDetailNilCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.lc = NewLifecycle(f.books, f.authors, f.genres, f.instances, nil)

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)

	_, err = f.lc.Detail(ctx, "1")
	assert.NoError(t, err)
}

// TestUpdateInvalidatesCache 更新成功后删除详情缓存
func TestUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = f.lc.Detail(ctx, "1") // 回填缓存
	require.NoError(t, err)

	form := validForm()
	form.Summary = "新的内容简介"
	result, err := f.lc.Update(ctx, "1", form)
	require.NoError(t, err)
	assert.Equal(t, "/catalog/book/1", result.(flow.Redirect).Path)
	assert.Equal(t, 1, f.cache.deletes)

	updated, err := f.books.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "新的内容简介", updated.Summary)
}

// TestUpdateRenameCollision 改名撞上另一本书:重定向,不覆盖
func TestUpdateRenameCollision(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	second := validForm()
	second.Title = "The Wise Man's Fear"
	second.ISBN = "9780756404079"
	_, err = f.lc.Create(ctx, second)
	require.NoError(t, err)

	rename := validForm()
	rename.Title = "the wise man's fear"
	result, err := f.lc.Update(ctx, "1", rename)
	require.NoError(t, err)
	assert.Equal(t, "/catalog/book/2", result.(flow.Redirect).Path)

	untouched, err := f.books.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Name of the Wind", untouched.Title)
}

// TestDeleteSafety 有馆藏副本时拒绝删除并清点副本
func TestDeleteSafety(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	f.instances.instances = append(f.instances.instances, &bookinstance.Instance{
		ID: 1, BookID: 1, Imprint: "DAW Books, 2007", Status: bookinstance.StatusOnLoan,
	})

	result, err := f.lc.Delete(ctx, "1")
	require.NoError(t, err)

	render, ok := result.(flow.Render)
	require.True(t, ok)
	assert.Equal(t, "book_delete", render.View)
	assert.Len(t, render.Data["book_instances"], 1)

	_, err = f.books.FindByID(ctx, 1)
	assert.NoError(t, err)
}

// TestDeleteInvalidatesCache 删除成功后重定向到列表并清缓存
func TestDeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.lc.Create(ctx, validForm())
	require.NoError(t, err)
	_, err = f.lc.Detail(ctx, "1")
	require.NoError(t, err)

	result, err := f.lc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, book.ListURL, result.(flow.Redirect).Path)
	assert.Equal(t, 1, f.cache.deletes)

	_, err = f.books.FindByID(ctx, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestDeleteIdempotence 删除幂等:不存在或格式非法都重定向到列表
func TestDeleteIdempotence(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, rawID := range []string{"999", "abc"} {
		result, err := f.lc.Delete(ctx, rawID)
		require.NoError(t, err, "rawID=%s", rawID)
		assert.Equal(t, book.ListURL, result.(flow.Redirect).Path)
	}
}

// TestListOrdering 列表按书名升序
func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for i, title := range []string{"Zulu", "Alpha", "Mike"} {
		form := validForm()
		form.Title = title
		form.ISBN = fmt.Sprintf("978000000000%d", i)
		_, err := f.lc.Create(ctx, form)
		require.NoError(t, err)
	}

	result, err := f.lc.List(ctx)
	require.NoError(t, err)

	views := result.(flow.Render).Data["book_list"].([]book.SummaryView)
	require.Len(t, views, 3)
	assert.Equal(t, "Alpha", views[0].Title)
	assert.Equal(t, "Mike", views[1].Title)
	assert.Equal(t, "Zulu", views[2].Title)
}

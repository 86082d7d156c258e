package author

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// TestAuthorName 测试展示名派生
func TestAuthorName(t *testing.T) {
	t.Run("姓名齐全", func(t *testing.T) {
		a := &Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
		assert.Equal(t, "Rothfuss, Patrick", a.Name())
	})

	t.Run("缺少名字时返回空字符串", func(t *testing.T) {
		a := &Author{FamilyName: "Rothfuss"}
		assert.Equal(t, "", a.Name())
	})

	t.Run("缺少姓氏时返回空字符串", func(t *testing.T) {
		a := &Author{FirstName: "Patrick"}
		assert.Equal(t, "", a.Name())
	})
}

// TestAuthorDates 测试日期投影
func TestAuthorDates(t *testing.T) {
	t.Run("已填写的日期", func(t *testing.T) {
		a := &Author{
			DateOfBirth: date(1920, time.January, 2),
			DateOfDeath: date(1999, time.March, 4),
		}
		assert.Equal(t, "Jan 2, 1920", a.BirthFormatted())
		assert.Equal(t, "1920-01-02", a.BirthISO())
		assert.Equal(t, "Mar 4, 1999", a.DeathFormatted())
		assert.Equal(t, "1999-03-04", a.DeathISO())
		assert.Equal(t, "Jan 2, 1920 - Mar 4, 1999", a.Lifespan())
	})

	t.Run("未填写的日期返回空字符串", func(t *testing.T) {
		a := &Author{}
		assert.Equal(t, "", a.BirthFormatted())
		assert.Equal(t, "", a.BirthISO())
		assert.Equal(t, "", a.DeathFormatted())
		assert.Equal(t, "", a.DeathISO())
		assert.Equal(t, " - ", a.Lifespan())
	})
}

// TestAuthorURL 测试详情页路径派生
func TestAuthorURL(t *testing.T) {
	a := &Author{ID: 42}
	assert.Equal(t, "/catalog/author/42", a.URL())
}

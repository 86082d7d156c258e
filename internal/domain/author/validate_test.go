package author

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseForm 测试作者表单校验
func TestParseForm(t *testing.T) {
	t.Run("合法表单", func(t *testing.T) {
		a, errs := ParseForm(Form{
			FirstName:   "  Patrick ",
			FamilyName:  "Rothfuss",
			DateOfBirth: "1973-06-06",
		})

		require.False(t, errs.HasErrors(), "不应有校验错误: %v", errs)
		assert.Equal(t, "Patrick", a.FirstName, "首尾空白应被清洗")
		assert.Equal(t, "Rothfuss", a.FamilyName)
		require.NotNil(t, a.DateOfBirth)
		assert.Equal(t, "1973-06-06", a.BirthISO())
		assert.Nil(t, a.DateOfDeath)
	})

	t.Run("必填字段缺失", func(t *testing.T) {
		_, errs := ParseForm(Form{})

		assert.Equal(t, []string{"名字必须填写", "姓氏必须填写"}, errs.Messages(), "错误消息应按字段顺序")
	})

	t.Run("超长姓名", func(t *testing.T) {
		long := strings.Repeat("a", NameMaxLen+1)
		_, errs := ParseForm(Form{FirstName: long, FamilyName: "Ok"})

		require.True(t, errs.HasErrors())
		assert.Contains(t, errs.Messages()[0], "不能超过")
	})

	t.Run("非法日期格式", func(t *testing.T) {
		_, errs := ParseForm(Form{
			FirstName:   "A",
			FamilyName:  "B",
			DateOfBirth: "06/06/1973",
		})

		require.True(t, errs.HasErrors())
		assert.Contains(t, errs.Messages()[0], "出生日期格式不正确")
	})

	t.Run("去世早于出生", func(t *testing.T) {
		_, errs := ParseForm(Form{
			FirstName:   "A",
			FamilyName:  "B",
			DateOfBirth: "1990-01-01",
			DateOfDeath: "1980-01-01",
		})

		require.True(t, errs.HasErrors())
		assert.Contains(t, errs.Messages()[0], "不能早于出生日期")
	})

	t.Run("校验失败仍返回清洗后的候选实体", func(t *testing.T) {
		a, errs := ParseForm(Form{FirstName: " <b>X</b> "})

		require.True(t, errs.HasErrors())
		assert.Equal(t, "&lt;b&gt;X&lt;/b&gt;", a.FirstName, "回显值应为清洗后的值")
	})
}

// Package collation 提供自然键的归一化比较
//
// 设计说明：
// 重复检测要求对名称做"英文语言环境、忽略大小写和重音"的等值比较
// （例如 "Fiction" / "fiction" / "FICTION" / "Fictión" 视为同名）。
// 这里不依赖数据库的collation配置，而是把名称归一化成一个键（Key），
// 归一化键既用于内存中的等值判断，也作为持久层的冗余列建立唯一索引，
// 作为应用层"先查后写"去重的存储级兜底。
package collation

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key 计算自然键的归一化键
// 规则：NFD分解去除组合重音符号后合成NFC（"Fictión" → "Fiction"），
// 再做英文语言环境的小写转换
//
// 注意：
// 1. transform.Chain和cases.Caser都是携带内部缓冲的有状态转换器，
//    不能作为包级单例在并发请求间共享，必须每次调用重新构造
// 2. 输入应当是已经过表单清洗（去首尾空白）的值，Key不负责去除空白
func Key(name string) string {
	stripMarks := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		// 非法UTF-8序列等极端情况：退化为直接小写
		return strings.ToLower(name)
	}
	return cases.Lower(language.English).String(stripped)
}

// Equal 判断两个自然键在归一化规则下是否相等
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

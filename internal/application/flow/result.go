// Package flow 定义生命周期控制器的出站结果描述符
//
// 设计说明:
// 控制器不直接操作HTTP,每个操作返回一个结果描述符,由接口层翻译:
// - Render:   渲染某个视图(携带标题、实体、有序错误列表等数据)
// - Redirect: 重定向到详情页或列表页
// - error:    失败信号(AppError),由HTTP边界按业务码映射为404/500等
// 校验失败永远不作为error上抛,而是恢复为携带错误列表的Render
package flow

import "strconv"

// Result 出站结果描述符(Render或Redirect)
type Result interface {
	isResult()
}

// Render 渲染视图
type Render struct {
	View string         // 视图名(如genre_form、genre_detail)
	Data map[string]any // 视图数据,至少包含title
}

// Redirect 重定向
type Redirect struct {
	Path string // 详情页路径(/catalog/genre/<id>)或列表页路径(/catalog/genres)
}

func (Render) isResult()   {}
func (Redirect) isResult() {}

// AbsencePolicy 目标不存在时的处理策略
// 这是一个显式的策略选择,不是各操作间的偶然不一致:
// - StrictExistence:   读取/更新表单类操作,目标不存在(含格式非法的ID)上抛NotFound
// - IdempotentAbsence: 删除类操作,目标不存在视为"已完成",静默重定向到列表页,
//   以支持删除动作的幂等重试
type AbsencePolicy int

const (
	StrictExistence AbsencePolicy = iota
	IdempotentAbsence
)

// ParseID 解析请求中的实体标识符
// 合法标识符是正的十进制整数;格式非法与"不存在"由调用方按AbsencePolicy处理
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

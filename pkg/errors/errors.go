package errors

import "errors"

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// ========== 业务哨兵错误 ==========

// 分配引擎错误：校验失败时整个操作中止，不产生任何写入
var (
	// ErrRoomNotFound 请求的房间号不存在
	ErrRoomNotFound = errors.New("房间不存在")

	// ErrRoomAtCapacity 房间已满员
	ErrRoomAtCapacity = errors.New("房间已满员")

	// ErrRoomOccupied 房间仍有住户，禁止删除
	ErrRoomOccupied = errors.New("房间仍有住户")

	// ErrEmailExists 邮箱已被其他租客使用
	ErrEmailExists = errors.New("邮箱已存在")

	// ErrRoomNoExists 房间号已存在
	ErrRoomNoExists = errors.New("房间号已存在")
)

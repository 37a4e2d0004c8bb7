package handlers

import (
	stderrors "errors"

	"pgmgmt/internal/models"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/errors"
	"pgmgmt/pkg/pagination"
	"pgmgmt/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RoomHandler 房间处理器
type RoomHandler struct {
	service *services.RoomService
}

// NewRoomHandler 创建房间处理器实例
func NewRoomHandler(service *services.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// CreateRoomRequest 创建房间请求，capacity为0表示不限人数
type CreateRoomRequest struct {
	RoomNo   string `json:"room_no" binding:"required,min=1,max=50"`
	Capacity int    `json:"capacity" binding:"min=0"`
	FloorNo  string `json:"floor_no" binding:"max=20"`
	Comments string `json:"comments" binding:"max=500"`
}

// UpdateRoomDetailsRequest 房间局部更新请求
type UpdateRoomDetailsRequest struct {
	Capacity *int    `json:"capacity" binding:"omitempty,min=0"`
	FloorNo  *string `json:"floor_no" binding:"omitempty,max=20"`
	Comments *string `json:"comments" binding:"omitempty,max=500"`
}

// Create 创建房间
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(c, "参数校验失败: "+validationErr.Error())
			return
		}
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.service.Create(&models.Room{
		RoomNo:   req.RoomNo,
		Capacity: req.Capacity,
		FloorNo:  req.FloorNo,
		Comments: req.Comments,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrRoomNoExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "创建房间失败")
		return
	}

	response.Success(c, room)
}

// GetAll 获取房间列表
func (h *RoomHandler) GetAll(c *gin.Context) {
	rooms, err := h.service.GetAll()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	paged, pageInfo := pagination.Paginate(rooms, pageParams)
	response.SuccessWithPage(c, paged, pageInfo)
}

// GetByRoomNo 按房间号获取房间
func (h *RoomHandler) GetByRoomNo(c *gin.Context) {
	room, err := h.service.GetByRoomNo(c.Param("roomNo"))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	if room == nil {
		response.NotFound(c, "房间不存在")
		return
	}
	response.Success(c, room)
}

// Update 局部更新房间属性
func (h *RoomHandler) Update(c *gin.Context) {
	var req UpdateRoomDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.service.Update(c.Param("roomNo"), &services.RoomUpdate{
		Capacity: req.Capacity,
		FloorNo:  req.FloorNo,
		Comments: req.Comments,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrRoomAtCapacity) {
			response.BadRequest(c, "容量不能小于现有住户数")
			return
		}
		response.ServerError(c, "更新房间失败")
		return
	}
	if room == nil {
		response.NotFound(c, "房间不存在")
		return
	}

	response.Success(c, room)
}

// Delete 删除房间
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("roomNo")); err != nil {
		if stderrors.Is(err, errors.ErrRoomOccupied) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "删除房间失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

package handlers

import (
	stderrors "errors"
	"strconv"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/errors"
	"pgmgmt/pkg/pagination"
	"pgmgmt/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// TenantHandler 租客处理器
type TenantHandler struct {
	service    *services.TenantService
	allocation *services.AllocationService
}

// NewTenantHandler 创建租客处理器实例
func NewTenantHandler(service *services.TenantService, allocation *services.AllocationService) *TenantHandler {
	return &TenantHandler{
		service:    service,
		allocation: allocation,
	}
}

// CreateTenantRequest 创建租客请求
type CreateTenantRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Email          string     `json:"email" binding:"required,email"`
	Phone          string     `json:"phone" binding:"max=30"`
	PictureURL     string     `json:"picture_url" binding:"omitempty,url"`
	MealPreference string     `json:"meal_preference" binding:"max=50"`
	IsActive       *bool      `json:"is_active"`
	ContinuousStay bool       `json:"continuous_stay"`
	RenewalDate    *time.Time `json:"renewal_date"`
}

// UpdateTenantRequest 更新租客请求
type UpdateTenantRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Email          string     `json:"email" binding:"required,email"`
	Phone          string     `json:"phone" binding:"max=30"`
	PictureURL     string     `json:"picture_url" binding:"omitempty,url"`
	MealPreference string     `json:"meal_preference" binding:"max=50"`
	IsActive       bool       `json:"is_active"`
	Due            bool       `json:"due"`
	ContinuousStay bool       `json:"continuous_stay"`
	RenewalDate    *time.Time `json:"renewal_date"`
}

// UpdateStatusRequest 更新在住状态请求
type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateProfileRequest 局部更新档案请求
type UpdateProfileRequest struct {
	Phone          *string    `json:"phone"`
	MealPreference *string    `json:"meal_preference"`
	RenewalDate    *time.Time `json:"renewal_date"`
	ContinuousStay *bool      `json:"continuous_stay"`
	Due            *bool      `json:"due"`
}

// UpdateRoomRequest 房间分配请求，room_no为null表示取消分配
type UpdateRoomRequest struct {
	RoomNo *string `json:"room_no"`
}

// Create 创建租客
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(c, "参数校验失败: "+validationErr.Error())
			return
		}
		response.BadRequest(c, "参数错误")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tenant := &models.Tenant{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PictureURL:     req.PictureURL,
		MealPreference: req.MealPreference,
		IsActive:       isActive,
		ContinuousStay: req.ContinuousStay,
		RenewalDate:    req.RenewalDate,
	}

	created, err := h.service.Create(tenant)
	if err != nil {
		if stderrors.Is(err, errors.ErrEmailExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "创建租客失败")
		return
	}

	response.Success(c, created)
}

// GetAll 获取租客列表
func (h *TenantHandler) GetAll(c *gin.Context) {
	tenants, err := h.service.GetAll()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageParams := pagination.ParsePageParams(c)
	paged, pageInfo := pagination.Paginate(tenants, pageParams)
	response.SuccessWithPage(c, paged, pageInfo)
}

// GetByEmail 按邮箱获取租客
func (h *TenantHandler) GetByEmail(c *gin.Context) {
	tenant, err := h.service.GetByEmail(c.Param("email"))
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	if tenant == nil {
		response.NotFound(c, "租客不存在")
		return
	}
	response.Success(c, tenant)
}

// Update 更新租客基本信息
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErr, ok := err.(validator.ValidationErrors); ok {
			response.BadRequest(c, "参数校验失败: "+validationErr.Error())
			return
		}
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.Update(id, &models.Tenant{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PictureURL:     req.PictureURL,
		MealPreference: req.MealPreference,
		IsActive:       req.IsActive,
		Due:            req.Due,
		ContinuousStay: req.ContinuousStay,
		RenewalDate:    req.RenewalDate,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrEmailExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "更新租客失败")
		return
	}
	if tenant == nil {
		response.NotFound(c, "租客不存在")
		return
	}

	response.Success(c, tenant)
}

// UpdateStatus 更新在住状态
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.UpdateStatus(id, *req.IsActive)
	if err != nil {
		response.ServerError(c, "更新状态失败")
		return
	}
	if tenant == nil {
		response.NotFound(c, "租客不存在")
		return
	}

	response.Success(c, tenant)
}

// UpdateProfile 局部更新租客档案
func (h *TenantHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// RenewalDate用原始map区分"未提交"和"提交null"
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	update, err := buildProfileUpdate(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.service.UpdateProfile(id, update)
	if err != nil {
		response.ServerError(c, "更新档案失败")
		return
	}
	if tenant == nil {
		response.NotFound(c, "租客不存在")
		return
	}

	response.Success(c, tenant)
}

// UpdateRoom 变更房间分配，委托给分配引擎
func (h *TenantHandler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	tenant, err := h.service.GetByID(id)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	if tenant == nil {
		response.NotFound(c, "租客不存在")
		return
	}

	updated, err := h.allocation.ReassignRoom(tenant, req.RoomNo)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrRoomNotFound):
			response.NotFound(c, err.Error())
		case stderrors.Is(err, errors.ErrRoomAtCapacity):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, "房间分配失败")
		}
		return
	}

	response.Success(c, updated)
}

// Delete 删除租客
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		response.ServerError(c, "删除租客失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// buildProfileUpdate 从原始JSON构造档案更新
func buildProfileUpdate(raw map[string]interface{}) (*services.TenantProfileUpdate, error) {
	update := &services.TenantProfileUpdate{}

	if v, present := raw["phone"]; present {
		s, _ := v.(string)
		update.Phone = &s
	}
	if v, present := raw["meal_preference"]; present {
		s, _ := v.(string)
		update.MealPreference = &s
	}
	if v, present := raw["renewal_date"]; present {
		update.RenewalDateSet = true
		if s, ok := v.(string); ok && s != "" {
			parsed, err := parseDate(s)
			if err != nil {
				return nil, err
			}
			update.RenewalDate = &parsed
		}
	}
	if v, present := raw["continuous_stay"]; present {
		b, _ := v.(bool)
		update.ContinuousStay = &b
	}
	if v, present := raw["due"]; present {
		b, _ := v.(bool)
		update.Due = &b
	}

	return update, nil
}

// parseDate 支持RFC3339时间戳和纯日期两种格式
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, stderrors.New("日期格式错误")
	}
	return t, nil
}

// parseID 解析路径中的租客ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return 0, false
	}
	return uint(id), true
}

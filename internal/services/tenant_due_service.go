package services

import (
	"fmt"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/logger"
)

// TenantDueService 租客到期评估
type TenantDueService struct {
	tenants  repository.TenantStore
	location *time.Location // 续期日折算日历日所用时区
}

// NewTenantDueService 创建到期评估服务
func NewTenantDueService(tenants repository.TenantStore, location *time.Location) *TenantDueService {
	return &TenantDueService{
		tenants:  tenants,
		location: location,
	}
}

// EvaluateDueStatus 批量标记到期租客
//
// 候选集：due=false、设置了续期日且连续居住的租客。续期日按
// 评估时区折算成日历日后不晚于referenceDate的标记due=true。
// 候选集为空或无人满足条件时直接返回，不触发任何写入。
func (s *TenantDueService) EvaluateDueStatus(referenceDate time.Time) (int, error) {
	candidates, err := s.tenants.FindDueEligible()
	if err != nil {
		return 0, fmt.Errorf("查询到期候选租客失败: %w", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Debugf("到期评估 date=%s candidates=%d",
		referenceDate.Format("2006-01-02"), len(candidates))

	if len(candidates) == 0 {
		return 0, nil
	}

	var toUpdate []*models.Tenant
	for i := range candidates {
		if s.shouldMarkDue(&candidates[i], referenceDate) {
			candidates[i].Due = true
			toUpdate = append(toUpdate, &candidates[i])
		}
	}

	if len(toUpdate) == 0 {
		return 0, nil
	}

	if err := s.tenants.SaveAll(toUpdate); err != nil {
		return 0, fmt.Errorf("保存到期租客失败: %w", err)
	}

	appLogger.Infof("已标记 %d 名租客为到期", len(toUpdate))
	return len(toUpdate), nil
}

// shouldMarkDue 续期日折算成日历日后不晚于基准日则到期
func (s *TenantDueService) shouldMarkDue(tenant *models.Tenant, referenceDate time.Time) bool {
	if tenant.RenewalDate == nil {
		return false
	}

	renewal := tenant.RenewalDate.In(s.location)
	renewalDay := time.Date(renewal.Year(), renewal.Month(), renewal.Day(), 0, 0, 0, 0, s.location)
	ref := referenceDate.In(s.location)
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, s.location)

	return !renewalDay.After(refDay)
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/repository"
	"school-admin/backend/internal/stats"
)

// dashboardPlanningLimit 仪表盘课表预览条数
const dashboardPlanningLimit = 4

// DashboardService 仪表盘业务接口
type DashboardService interface {
	Get(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger, now: time.Now}
}

// Get 并发加载四类快照后一次性重算；任一加载失败则整体失败，不做部分统计
func (s *dashboardService) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		s.logger.Error("加载仪表盘数据失败", zap.Error(err))
		return nil, err
	}

	return &dto.DashboardResponse{
		DashboardStats: stats.Dashboard(snap, dashboardPlanningLimit),
		GeneratedAt:    s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *dashboardService) loadSnapshot(ctx context.Context) (stats.Snapshot, error) {
	var snap stats.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Students, err = s.repo.Student.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Teachers, err = s.repo.Teacher.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Courses, err = s.repo.Course.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Enrollments, err = s.repo.Enrollment.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return stats.Snapshot{}, err
	}
	return snap, nil
}

package services

import (
	"context"

	"github.com/tutorzindia/site/models"
	"github.com/tutorzindia/site/repository"
	"github.com/tutorzindia/site/ws"
)

// AchievementService manages student achievements.
type AchievementService interface {
	// ListPublic loads the achievements page, falling back to the defaults.
	ListPublic(ctx context.Context) Loaded[models.Achievement]
	List(ctx context.Context, actor *models.User) ([]models.Achievement, error)
	Create(ctx context.Context, actor *models.User, req *models.AchievementRequest) (*models.Achievement, error)
}

type achievementService struct {
	repo      repository.AchievementRepository
	loader    *ListLoader[models.Achievement]
	publisher ws.EventPublisher
}

// NewAchievementService wires the service. publisher may be nil.
func NewAchievementService(repo repository.AchievementRepository, publisher ws.EventPublisher) AchievementService {
	return &achievementService{
		repo:      repo,
		loader:    NewListLoader(CollectionAchievements, repo.List, DefaultAchievements()),
		publisher: publisher,
	}
}

func (s *achievementService) ListPublic(ctx context.Context) Loaded[models.Achievement] {
	return s.loader.Load(ctx)
}

func (s *achievementService) List(ctx context.Context, actor *models.User) ([]models.Achievement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *achievementService) Create(ctx context.Context, actor *models.User, req *models.AchievementRequest) (*models.Achievement, error) {
	if err := req.Validate(); err != nil {
		return nil, badRequest(err)
	}
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	a := req.ToAchievement()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	publishContentUpdate(s.publisher, CollectionAchievements)
	return a, nil
}

package services

import (
	"context"

	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo   repositories.UserRepository
	eventRepo  repositories.EventRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	backups    BackupService
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	backups BackupService,
) DashboardService {
	return &dashboardService{
		userRepo:   userRepo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		backups:    backups,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	usersTotal, err := s.userRepo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	eventsTotal, err := s.eventRepo.Count(ctx, false)
	if err != nil {
		return models.DashboardStats{}, err
	}
	activeEvents, err := s.eventRepo.Count(ctx, true)
	if err != nil {
		return models.DashboardStats{}, err
	}
	playersTotal, err := s.playerRepo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	matchesTotal, err := s.matchRepo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	backupsStored := 0
	if s.backups != nil {
		if backups, listErr := s.backups.List(ctx); listErr == nil {
			backupsStored = len(backups)
		}
	}

	return models.DashboardStats{
		UsersTotal:    usersTotal,
		EventsTotal:   eventsTotal,
		ActiveEvents:  activeEvents,
		PlayersTotal:  playersTotal,
		MatchesTotal:  matchesTotal,
		BackupsStored: backupsStored,
	}, nil
}

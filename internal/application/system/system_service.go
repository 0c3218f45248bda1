package system

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/system"
)

// UpsertConfigInput contains the input for writing a config entry
type UpsertConfigInput struct {
	Key         string
	Value       string
	Secret      bool
	Description string
}

// ConfigView is a config entry with its secret value masked for display
type ConfigView struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Secret      bool   `json:"secret"`
	Description string `json:"description"`
}

// CreateToolInput contains the input for registering a member tool
type CreateToolInput struct {
	MemberID    uuid.UUID
	Name        string
	MonthlyCost decimal.Decimal
	AccountInfo string
	Notes       string
}

// UpdateToolInput contains the input for updating a member tool
type UpdateToolInput struct {
	Name        *string
	MonthlyCost *decimal.Decimal
	AccountInfo *string
	Notes       *string
	Active      *bool
}

// SystemService manages configuration entries and member tool inventory
type SystemService struct {
	configRepo system.ConfigRepository
	toolRepo   system.ToolRepository
	memberRepo identity.MemberRepository
	logger     *zap.Logger
}

// NewSystemService creates a new system service
func NewSystemService(
	configRepo system.ConfigRepository,
	toolRepo system.ToolRepository,
	memberRepo identity.MemberRepository,
	logger *zap.Logger,
) *SystemService {
	return &SystemService{
		configRepo: configRepo,
		toolRepo:   toolRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// UpsertConfig inserts or replaces a configuration entry
func (s *SystemService) UpsertConfig(ctx context.Context, input UpsertConfigInput) (*ConfigView, error) {
	cfg, err := system.NewSystemConfig(input.Key, input.Value, input.Secret, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("config updated", zap.String("key", cfg.Key), zap.Bool("secret", cfg.Secret))
	return configView(cfg), nil
}

// Config returns one entry by key, masked if secret
func (s *SystemService) Config(ctx context.Context, key string) (*ConfigView, error) {
	cfg, err := s.configRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return configView(cfg), nil
}

// Configs returns all entries, masked where secret
func (s *SystemService) Configs(ctx context.Context) ([]*ConfigView, error) {
	configs, err := s.configRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*ConfigView, len(configs))
	for i, cfg := range configs {
		views[i] = configView(cfg)
	}
	return views, nil
}

// RawConfigValue returns the stored value without masking. For internal
// use only; never exposed over HTTP.
func (s *SystemService) RawConfigValue(ctx context.Context, key string) (string, error) {
	cfg, err := s.configRepo.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return cfg.Value, nil
}

func configView(cfg *system.SystemConfig) *ConfigView {
	return &ConfigView{
		Key:         cfg.Key,
		Value:       cfg.DisplayValue(),
		Secret:      cfg.Secret,
		Description: cfg.Description,
	}
}

// CreateTool registers a tool or subscription issued to a member
func (s *SystemService) CreateTool(ctx context.Context, input CreateToolInput) (*system.MemberTool, error) {
	if _, err := s.memberRepo.FindByID(ctx, input.MemberID); err != nil {
		return nil, err
	}
	tool, err := system.NewMemberTool(input.MemberID, input.Name, input.MonthlyCost)
	if err != nil {
		return nil, err
	}
	tool.AccountInfo = input.AccountInfo
	tool.Notes = input.Notes
	if err := s.toolRepo.Create(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

// UpdateTool applies partial updates to a tool entry
func (s *SystemService) UpdateTool(ctx context.Context, id uuid.UUID, input UpdateToolInput) (*system.MemberTool, error) {
	tool, err := s.toolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		tool.Name = *input.Name
	}
	if input.MonthlyCost != nil {
		tool.MonthlyCost = *input.MonthlyCost
	}
	if input.AccountInfo != nil {
		tool.AccountInfo = *input.AccountInfo
	}
	if input.Notes != nil {
		tool.Notes = *input.Notes
	}
	if input.Active != nil {
		if *input.Active {
			tool.Active = true
		} else {
			tool.Deactivate()
		}
	}
	if err := s.toolRepo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

// DeleteTool removes a tool entry
func (s *SystemService) DeleteTool(ctx context.Context, id uuid.UUID) error {
	return s.toolRepo.Delete(ctx, id)
}

// Tool returns one tool entry
func (s *SystemService) Tool(ctx context.Context, id uuid.UUID) (*system.MemberTool, error) {
	return s.toolRepo.FindByID(ctx, id)
}

// MemberTools returns the tools issued to one member
func (s *SystemService) MemberTools(ctx context.Context, memberID uuid.UUID) ([]*system.MemberTool, error) {
	return s.toolRepo.FindByMemberID(ctx, memberID)
}

// Tools returns all tool entries
func (s *SystemService) Tools(ctx context.Context) ([]*system.MemberTool, error) {
	return s.toolRepo.FindAll(ctx)
}

package commands

import (
	"context"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/pkg/errs"
)

type CreateCampaignInput struct {
	Name           string
	TotalQuantity  int32
	ExpirationDate time.Time
	IssueStartTime time.Time
	IssueEndTime   time.Time
}

type CampaignCommands interface {
	CreateCampaign(ctx context.Context, input CreateCampaignInput) (*repository.CampaignRow, error)
}

type campaignUseCaseImpl struct {
	campaignRepo CampaignRepository
}

func NewCampaignUseCase(campaignRepo CampaignRepository) CampaignCommands {
	return &campaignUseCaseImpl{campaignRepo: campaignRepo}
}

func (u *campaignUseCaseImpl) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*repository.CampaignRow, error) {
	exists, err := u.campaignRepo.ExistsByNameAndExpiration(ctx, input.Name, input.ExpirationDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if exists {
		return nil, errs.ErrCampaignExists
	}

	camp, err := campaign.Create(
		input.Name,
		input.TotalQuantity,
		input.ExpirationDate,
		input.IssueStartTime,
		input.IssueEndTime,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCampaignValidation)
	}

	if err := u.campaignRepo.Create(ctx, camp); err != nil {
		// unique (name, expiration_date) closes the check-then-create race
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrCampaignExists
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &repository.CampaignRow{
		ID:                camp.ID(),
		Code:              camp.Code().String(),
		Name:              camp.Name(),
		TotalQuantity:     camp.TotalQuantity(),
		RemainingQuantity: camp.RemainingQuantity(),
		ExpirationDate:    camp.ExpirationDate(),
		IssueStartTime:    camp.IssueStartTime(),
		IssueEndTime:      camp.IssueEndTime(),
	}, nil
}

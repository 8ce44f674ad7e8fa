package components

import (
	repo_impl "coupon-service/internal/infra/repository"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repo_impl.NewCampaignRepository,
			fx.As(new(commands.CampaignRepository)),
		),
		fx.Annotate(
			repo_impl.NewGrantRepository,
			fx.As(new(commands.GrantRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			repo_impl.NewCampaignReadStore,
			fx.As(new(queries.CampaignReadStore)),
		),
		fx.Annotate(
			repo_impl.NewGrantReadStore,
			fx.As(new(queries.GrantReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}

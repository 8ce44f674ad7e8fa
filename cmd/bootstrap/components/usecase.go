package components

import (
	"log/slog"

	"coupon-service/internal/infra/mail"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(pool *pgxpool.Pool) commands.TxBeginner { return pool },
	func(s *redisstore.ReservationStore) commands.Reserver { return s },
	func(m *redisstore.LockManager) commands.Locker { return m },
	func(p *stream.Producer) commands.Publisher { return p },
	func(cfg config.Config) commands.Notifier { return mail.NewSender(cfg.Mail) },
	NewAdmissionStrategy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewIssuanceUseCase,
		commands.NewUsageUseCase,
		commands.NewCampaignUseCase,
		NewExpirationUseCase,
		commands.NewIssuanceProcessor,
		NewUsageProcessor,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCampaignQueries,
		queries.NewGrantQueries,
	),
)

func NewAdmissionStrategy(
	cfg config.Config,
	campaignRepo commands.CampaignRepository,
	grantRepo commands.GrantRepository,
	reserver commands.Reserver,
	locker commands.Locker,
	db commands.TxBeginner,
) (commands.AdmissionStrategy, error) {
	return commands.NewAdmissionStrategy(cfg.Admission, campaignRepo, grantRepo, reserver, locker, db)
}

func NewExpirationUseCase(
	grantRepo commands.GrantRepository,
	notifier commands.Notifier,
	cfg config.Config,
	clock clock.Clock,
) commands.ExpirationCommands {
	return commands.NewExpirationUseCase(grantRepo, notifier, cfg.Expiry, clock)
}

func NewUsageProcessor(notifier commands.Notifier, logger *slog.Logger) *commands.UsageProcessor {
	return commands.NewUsageProcessor(notifier, logger)
}

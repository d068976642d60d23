package setup

import (
	"github.com/LavaJover/shvark-escrow-service/internal/policy"
	usecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/deal"
)

type UseCases struct {
	DealUsecase usecase.DealUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	dealPolicy := policy.Policy{
		OperatorID:              deps.Config.EscrowPolicy.OperatorID,
		ReleaseRequiresShipment: deps.Config.EscrowPolicy.ReleaseRequiresShipment,
		AllowSamePayerPayee:     deps.Config.EscrowPolicy.AllowSamePayerPayee,
	}

	dealUsecase := usecase.NewDefaultDealUsecase(
		deps.Repositories.DealRepo,
		deps.Repositories.DisputeRepo,
		deps.Repositories.LedgerRepo,
		deps.DealPublisher,
		deps.AuditLogger,
		deps.Metrics,
		dealPolicy,
		deps.Config.KafkaService.Topic,
		deps.Config.EscrowPolicy.DepositTTL,
	)

	return &UseCases{
		DealUsecase: dealUsecase,
	}, nil
}

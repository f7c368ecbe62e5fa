package server

import (
	"context"

	"buildmart/internal/config"
	"buildmart/internal/handler"
	"buildmart/internal/infra/db"
	infraRepo "buildmart/internal/infra/repository"
	repo "buildmart/internal/repository"
	"buildmart/internal/usecase"
	"buildmart/internal/validator"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	//Repository（GORM実装）生成
	repos := infraRepo.NewReposGorm(d.DB)
	txm := infraRepo.NewTxManagerGorm(d.DB)

	v := validator.NewCheckoutValidator(d.Clock)

	//Usecase生成
	availabilityUC := usecase.NewAvailabilityUsecase(repos.Catalog(), repos.OrderItems(), v)
	checkoutUC := usecase.NewCheckoutUsecase(repos, newCommitter(d.Config, repos, txm), v, d.Publisher, d.IDGen, d.Clock)
	orderUC := usecase.NewOrderUsecase(txm)

	//Handler生成
	handler.NewInventoryHandler(availabilityUC).RegisterRoutes(e)
	handler.NewCheckoutHandler(checkoutUC).RegisterRoutes(e, d.Config)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e, d.Config)
	handler.NewHealthHandler(func(ctx context.Context) error {
		return db.Ping(ctx, d.DB)
	}).RegisterRoutes(e)
}

func newCommitter(cfg config.Config, repos repo.Repos, txm *infraRepo.TxManagerGorm) usecase.OrderCommitter {
	if cfg.CheckoutCommitMode == config.CommitModeCompensate {
		return usecase.NewCompensatingCommitter(repos)
	}
	return usecase.NewTxCommitter(txm)
}

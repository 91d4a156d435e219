package roster

import (
	"database/sql"

	"go.uber.org/zap"

	"wardsync/internal/roster/controller"
	"wardsync/internal/roster/repository"
	"wardsync/internal/roster/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.RosterController {
	patientRepo := repository.NewMySQLPatientRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db)
	uc := usecase.NewRosterUseCase(patientRepo, orderRepo, logger)
	return controller.NewRosterController(uc, logger)
}

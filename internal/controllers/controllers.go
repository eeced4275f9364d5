package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"impound_manager/internal/config"
	"impound_manager/internal/fees"
	"impound_manager/internal/lifecycle"
	"impound_manager/internal/notify"
	"impound_manager/internal/settings"
)

// Shared service handles, wired once at startup.
var (
	Lifecycle *lifecycle.Service
	Settings  *settings.Store
	Notifier  *notify.Notifier
)

// Setup wires the domain services against the global DB handle. Must run
// after config.InitDB.
func Setup() {
	db := config.GetDB()
	Settings = settings.NewStore(settings.GormLoader{DB: db})
	Notifier = notify.NewNotifier(db, nil)
	Lifecycle = lifecycle.NewService(lifecycle.NewGormRepository(db), Settings, Notifier)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The postgres driver runs on pgx, so errors arrive as
// *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// parseID reads the :id route parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// respondLifecycleError maps the lifecycle sentinels onto HTTP status codes.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, lifecycle.ErrInvalidAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Payment amount must be positive"})
	case errors.Is(err, lifecycle.ErrOutstandingBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Procedure still has an outstanding balance"})
	case errors.Is(err, lifecycle.ErrInvalidVehicleState):
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is not impounded"})
	case errors.Is(err, lifecycle.ErrActiveProcedure):
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle already has an active procedure"})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid procedure status transition"})
	case errors.Is(err, lifecycle.ErrIllegalVehicleTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Illegal vehicle status transition"})
	case errors.Is(err, lifecycle.ErrProcedureClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Procedure is completed or cancelled"})
	case errors.Is(err, fees.ErrInvalidConfiguration), errors.Is(err, fees.ErrInvalidTimestamp):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

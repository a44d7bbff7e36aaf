package debug

import (
	"beelinks-api/internal/logger"
	"beelinks-api/internal/repair"
)

// Handler manages the profile diagnostic and repair HTTP requests
type Handler struct {
	repairService repair.RepairService
	logger        *logger.Logger
}

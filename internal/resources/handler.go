package resources

import (
	"encoding/json"
	"net/http"

	"github.com/wolfman30/saathi/pkg/logging"
)

// Handler serves the resource catalog.
type Handler struct {
	logger *logging.Logger
}

func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

type catalogResponse struct {
	Success   bool    `json:"success"`
	Resources Catalog `json:"resources"`
}

// List handles GET /api/resources.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(catalogResponse{Success: true, Resources: Load()}); err != nil {
		h.logger.Error("failed to write resources response", "error", err)
	}
}

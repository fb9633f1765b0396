package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health probe
// @Description  Reports the state of redis and the mail configuration. Always 200 while the process serves.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /v1/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	var status map[string]string
	if h.healthUC != nil {
		status = h.healthUC.Check(c.Request.Context())
	}
	response.Success(c, http.StatusOK, "System operational", status)
}

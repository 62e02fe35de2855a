package bulkchange

import (
	"errors"
	"net/http"
	"time"

	"hrms/internal/middleware"
	"hrms/internal/shared/apperror"
	"hrms/internal/shared/response"

	bulkchangeerrors "hrms/internal/bulkchange/errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("bulkchange.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bulkchange.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// BulkChange translates the orchestrator outcome into the response
// contract: most failures are soft (HTTP 200 with ok=false); a forbidden
// role answers 403 and a company-switch conflict answers 409 with the
// refused ids.
func (h *Handler) BulkChange(c *gin.Context) {
	var req BulkChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseLock(c)
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	actor := Actor{
		HrmsID: c.GetString("hrms_id"),
		Roles:  middleware.RolesFromContext(c),
	}

	result, err := h.service.BulkChange(c.Request.Context(), actor, req)
	if err != nil {
		// failed requests must not hold the idempotency lock; only a
		// success caches a replayable result
		h.releaseLock(c)

		var switchErr *bulkchangeerrors.CompanySwitchError
		if errors.As(err, &switchErr) {
			response.Error(c, http.StatusConflict, "COMPANY_SWITCH_CONFLICT",
				"some employees already hold a company employee code", switchErr.FailedIDs)
			return
		}
		if errors.Is(err, bulkchangeerrors.ErrRoleNotAllowed) {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}

		h.logger.Warn("bulk change failed", zap.Error(err))
		response.Success(c, http.StatusOK, BulkChangeResponse{
			Ok:        false,
			Skipped:   result.Skipped,
			FailedIDs: result.FailedIDs,
		})
		return
	}

	resp := BulkChangeResponse{Ok: true, Skipped: result.Skipped}
	if h.rdb != nil {
		middleware.StoreIdempotentResult(c, h.rdb, resp, idempotencyResultTTL)
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) releaseLock(c *gin.Context) {
	if h.rdb != nil {
		middleware.ReleaseIdempotencyLock(c, h.rdb)
	}
}

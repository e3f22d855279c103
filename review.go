package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"bitbucket.org/mmdatafocus/telecom_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type signinRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type decisionRequest struct {
	Action          string  `json:"action" binding:"required"`
	RejectionReason *string `json:"rejectionReason"`
}

const sessionTokenTTL = 24 * time.Hour

func signinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		token, user, err := models.Signin(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if err := config.SetRedisValue("Token:"+token, user.Username, sessionTokenTTL); err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "main", "signinHandler", "store session token", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		_ = config.SetRedisObject("User:"+user.Username, user, 30*time.Minute)

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"token": token, "user": user}})
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.Logout(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": "logged out"})
	}
}

// currentUserHandler returns the logged in account. Falls back to the JWT
// claim when only a Bearer token was sent.
func currentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			if userId, ok := utils.GetUserIdFromContext(c.Request.Context()); ok {
				if user, lookupErr := models.GetUserById(c.Request.Context(), userId); lookupErr == nil {
					c.JSON(http.StatusOK, gin.H{"data": user})
					return
				}
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})
	}
}

func createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if actor.Role != models.UserRoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user, err := models.CreateUser(c.Request.Context(), &input)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, utils.ErrorDuplicateResource) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": user})
	}
}

func listBatchesHandler(domain models.BatchDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var status *models.BatchStatus
		if raw := strings.TrimSpace(c.Query("status")); raw != "" {
			value := models.BatchStatus(strings.ToUpper(raw))
			status = &value
		}
		var carrier *models.Provider
		if raw := strings.TrimSpace(c.Query("carrier")); raw != "" {
			value := models.CanonicalProvider(raw)
			if !value.Known() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported carrier"})
				return
			}
			carrier = &value
		}

		if domain == models.BatchDomainInvoice {
			batches, err := models.ListInvoiceBatches(c.Request.Context(), status, carrier)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list batches"})
				return
			}
			out := make([]batchResponse, 0, len(batches))
			for _, batch := range batches {
				out = append(out, invoiceBatchResponse(batch))
			}
			c.JSON(http.StatusOK, gin.H{"data": out})
			return
		}

		batches, err := models.ListInventoryBatches(c.Request.Context(), status, carrier)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list batches"})
			return
		}
		out := make([]batchResponse, 0, len(batches))
		for _, batch := range batches {
			out = append(out, inventoryBatchResponse(batch))
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
	}
}

func getBatchHandler(domain models.BatchDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		batchId := c.Param("batchId")
		if domain == models.BatchDomainInvoice {
			batch, err := models.GetInvoiceBatchByBatchId(c.Request.Context(), batchId)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": invoiceBatchResponse(batch)})
			return
		}
		batch, err := models.GetInventoryBatchByBatchId(c.Request.Context(), batchId)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": inventoryBatchResponse(batch)})
	}
}

// batchRecordsHandler returns the staged rows while a batch is awaiting
// review, and the promoted ledger rows once it has been approved.
func batchRecordsHandler(domain models.BatchDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := c.Request.Context()
		batchId := c.Param("batchId")

		var records any
		var err error
		if domain == models.BatchDomainInvoice {
			batch, lookupErr := models.GetInvoiceBatchByBatchId(ctx, batchId)
			if lookupErr != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			if batch.Status == models.BatchStatusApproved {
				records, err = workflow.FinalInvoiceRecords(ctx, batchId)
			} else {
				records, err = workflow.PendingInvoiceRecords(ctx, batchId)
			}
		} else {
			batch, lookupErr := models.GetInventoryBatchByBatchId(ctx, batchId)
			if lookupErr != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
				return
			}
			if batch.Status == models.BatchStatusApproved {
				records, err = workflow.FinalInventoryRecords(ctx, batchId)
			} else {
				records, err = workflow.PendingInventoryRecords(ctx, batchId)
			}
		}
		if err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "main", "batchRecordsHandler", "fetch batch records", map[string]any{"batch_id": batchId}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": records})
	}
}

func decideBatchHandler(domain models.BatchDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !canReview(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		var req decisionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
			return
		}
		action := models.ReviewAction(strings.ToUpper(strings.TrimSpace(req.Action)))

		ctx := utils.SetUsernameInContext(c.Request.Context(), user.Username)
		batchId := c.Param("batchId")

		var response batchResponse
		if domain == models.BatchDomainInvoice {
			batch, decideErr := workflow.DecideInvoiceBatch(ctx, batchId, action, user.Username, req.RejectionReason)
			if decideErr != nil {
				respondDecisionError(c, logger, batchId, decideErr)
				return
			}
			response = invoiceBatchResponse(batch)
		} else {
			batch, decideErr := workflow.DecideInventoryBatch(ctx, batchId, action, user.Username, req.RejectionReason)
			if decideErr != nil {
				respondDecisionError(c, logger, batchId, decideErr)
				return
			}
			response = inventoryBatchResponse(batch)
		}

		logger.WithFields(logrus.Fields{
			"batch_id": batchId,
			"action":   action,
			"reviewer": user.Username,
		}).Info("[review.decision]")

		c.JSON(http.StatusOK, gin.H{"data": response})
	}
}

func respondDecisionError(c *gin.Context, logger *logrus.Logger, batchId string, err error) {
	switch {
	case errors.Is(err, utils.ErrorBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
	case strings.Contains(err.Error(), "already been reviewed"):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorApprovalFailed):
		config.LogError(logger, "main", "decideBatchHandler", "approve batch", map[string]any{"batch_id": batchId}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approval failed, no records were promoted"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func listDepartmentMappingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		mappings, err := models.GetDepartmentAccountMappings(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list department mappings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": mappings})
	}
}

func getDepartmentMappingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping id"})
			return
		}
		mapping, err := models.GetDepartmentAccountMapping(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "mapping not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch mapping"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": mapping})
	}
}

func createDepartmentMappingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.Role != models.UserRoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		var input models.NewDepartmentAccountMapping
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mapping, err := models.CreateDepartmentAccountMapping(c.Request.Context(), &input)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, utils.ErrorDuplicateResource) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": mapping})
	}
}

func updateDepartmentMappingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.Role != models.UserRoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping id"})
			return
		}
		var input models.NewDepartmentAccountMapping
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mapping, err := models.UpdateDepartmentAccountMapping(c.Request.Context(), id, &input)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, utils.ErrorRecordNotFound) {
				status = http.StatusNotFound
			} else if errors.Is(err, utils.ErrorDuplicateResource) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": mapping})
	}
}

func deleteDepartmentMappingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.Role != models.UserRoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping id"})
			return
		}
		mapping, err := models.DeleteDepartmentAccountMapping(c.Request.Context(), id)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, utils.ErrorRecordNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": mapping})
	}
}

func listHistoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		batchId := utils.NilIfEmpty(strings.TrimSpace(c.Query("batchId")))
		userName := utils.NilIfEmpty(strings.TrimSpace(c.Query("userName")))

		histories, err := models.GetHistories(c.Request.Context(), batchId, userName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list histories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": histories})
	}
}

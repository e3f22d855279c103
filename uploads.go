package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/telecom_backend/config"
	"bitbucket.org/mmdatafocus/telecom_backend/models"
	"bitbucket.org/mmdatafocus/telecom_backend/utils"
	"bitbucket.org/mmdatafocus/telecom_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxUploadSizeBytes int64 = 50 * 1024 * 1024

var exportExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
	".txt":  true,
}

type uploadBatchForm struct {
	Carrier   string `form:"carrier" binding:"required,carrier"`
	BatchName string `form:"batchName"`
}

type batchResponse struct {
	BatchId         string     `json:"batch_id"`
	Carrier         string     `json:"carrier"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	SourceFilename  string     `json:"source_filename"`
	RecordCount     int        `json:"record_count"`
	UploadedBy      string     `json:"uploaded_by"`
	DateUploaded    time.Time  `json:"date_uploaded"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

func invoiceBatchResponse(batch *models.InvoiceBatchHistory) batchResponse {
	return batchResponse{
		BatchId:         batch.BatchId,
		Carrier:         string(batch.Carrier),
		Name:            batch.Name,
		Status:          string(batch.Status),
		SourceFilename:  batch.SourceFilename,
		RecordCount:     batch.RecordCount,
		UploadedBy:      batch.UploadedBy,
		DateUploaded:    batch.DateUploaded,
		ReviewedBy:      batch.ReviewedBy,
		ReviewedAt:      batch.ReviewedAt,
		RejectionReason: batch.RejectionReason,
	}
}

func inventoryBatchResponse(batch *models.InventoryBatchHistory) batchResponse {
	return batchResponse{
		BatchId:         batch.BatchId,
		Carrier:         string(batch.Carrier),
		Name:            batch.Name,
		Status:          string(batch.Status),
		SourceFilename:  batch.SourceFilename,
		RecordCount:     batch.RecordCount,
		UploadedBy:      batch.UploadedBy,
		DateUploaded:    batch.DateUploaded,
		ReviewedBy:      batch.ReviewedBy,
		ReviewedAt:      batch.ReviewedAt,
		RejectionReason: batch.RejectionReason,
	}
}

func uploadInvoiceBatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !canUpload(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		form, fileHeader, rows, objectKey, ok := receiveExport(c, logger, models.BatchDomainInvoice)
		if !ok {
			return
		}

		ctx := utils.SetUsernameInContext(c.Request.Context(), user.Username)
		ctx, span := tracer.Start(ctx, "ingest.invoice",
			trace.WithAttributes(attribute.String("carrier", form.Carrier)))
		defer span.End()

		mapping, err := models.LoadDepartmentMapping(ctx)
		if err != nil {
			config.LogError(logger, "main", "uploadInvoiceBatchHandler", "load department mapping", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load department mapping"})
			return
		}

		batch, err := workflow.IngestInvoices(ctx, form.Carrier, rows, mapping, fileHeader.Filename, form.BatchName, user.Username)
		if err != nil {
			discardArchivedExport(ctx, logger, objectKey)
			respondIngestError(c, logger, "uploadInvoiceBatchHandler", err)
			return
		}
		stampRawObjectKey(ctx, logger, batch, objectKey)

		logger.WithFields(logrus.Fields{
			"batch_id":     batch.BatchId,
			"carrier":      batch.Carrier,
			"record_count": batch.RecordCount,
			"filename":     fileHeader.Filename,
		}).Info("[upload.invoice]")

		c.JSON(http.StatusCreated, gin.H{"data": invoiceBatchResponse(batch)})
	}
}

func uploadInventoryBatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !canUpload(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}

		form, fileHeader, rows, objectKey, ok := receiveExport(c, logger, models.BatchDomainInventory)
		if !ok {
			return
		}

		ctx := utils.SetUsernameInContext(c.Request.Context(), user.Username)
		ctx, span := tracer.Start(ctx, "ingest.inventory",
			trace.WithAttributes(attribute.String("carrier", form.Carrier)))
		defer span.End()

		mapping, err := models.LoadDepartmentMapping(ctx)
		if err != nil {
			config.LogError(logger, "main", "uploadInventoryBatchHandler", "load department mapping", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load department mapping"})
			return
		}

		batch, err := workflow.IngestInventory(ctx, form.Carrier, rows, mapping, fileHeader.Filename, form.BatchName, user.Username)
		if err != nil {
			discardArchivedExport(ctx, logger, objectKey)
			respondIngestError(c, logger, "uploadInventoryBatchHandler", err)
			return
		}
		stampRawObjectKey(ctx, logger, batch, objectKey)

		logger.WithFields(logrus.Fields{
			"batch_id":     batch.BatchId,
			"carrier":      batch.Carrier,
			"record_count": batch.RecordCount,
			"filename":     fileHeader.Filename,
		}).Info("[upload.inventory]")

		c.JSON(http.StatusCreated, gin.H{"data": inventoryBatchResponse(batch)})
	}
}

// receiveExport binds the multipart form, parses the carrier export into raw
// rows and archives the original file. Responds with an error itself when ok
// is false.
func receiveExport(c *gin.Context, logger *logrus.Logger, domain models.BatchDomain) (*uploadBatchForm, *multipart.FileHeader, []workflow.RawRow, string, bool) {
	var form uploadBatchForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported or missing carrier %q", form.Carrier)})
		return nil, nil, nil, "", false
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, nil, nil, "", false
	}
	if fileHeader.Size > maxUploadSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 50MB limit"})
		return nil, nil, nil, "", false
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !exportExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, expected xlsx or csv"})
		return nil, nil, nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return nil, nil, nil, "", false
	}
	defer file.Close()

	rows, err := parseExportRows(ext, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse export: %v", err)})
		return nil, nil, nil, "", false
	}

	objectKey := archiveRawExport(c.Request.Context(), logger, domain, form.Carrier, fileHeader, ext)
	return &form, fileHeader, rows, objectKey, true
}

// parseExportRows turns a carrier export into header/value row pairs. The
// first non-empty sheet row is the header row, every following row pairs each
// cell with the header above it.
func parseExportRows(ext string, file io.Reader) ([]workflow.RawRow, error) {
	var records [][]string
	switch ext {
	case ".xlsx", ".xls":
		workbook, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer workbook.Close()

		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		records, err = workbook.GetRows(sheets[0])
		if err != nil {
			return nil, err
		}
	default:
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		all, err := reader.ReadAll()
		if err != nil {
			return nil, err
		}
		records = all
	}
	return buildRawRows(records), nil
}

func buildRawRows(records [][]string) []workflow.RawRow {
	var headers []string
	var rows []workflow.RawRow
	for _, record := range records {
		if headers == nil {
			if recordIsEmpty(record) {
				continue
			}
			headers = record
			continue
		}
		row := make(workflow.RawRow, 0, len(record))
		for i, value := range record {
			header := ""
			if i < len(headers) {
				header = headers[i]
			}
			row = append(row, workflow.RawCell{Header: header, Value: value})
		}
		rows = append(rows, row)
	}
	return rows
}

func recordIsEmpty(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// archiveRawExport stores the original upload in GCS for later audit. Archive
// failures do not block ingestion, the batch still carries the source
// filename.
func archiveRawExport(ctx context.Context, logger *logrus.Logger, domain models.BatchDomain, carrier string, fileHeader *multipart.FileHeader, ext string) string {
	if utils.GetStorageProvider() != utils.StorageProviderGCS {
		return ""
	}
	file, err := fileHeader.Open()
	if err != nil {
		config.LogError(logger, "main", "archiveRawExport", "open upload for archive", nil, err)
		return ""
	}
	defer file.Close()

	provider := string(models.CanonicalProvider(carrier))
	objectKey := path.Join("imports", strings.ToLower(string(domain)), provider, provider+"_"+utils.GenerateUniqueFilename()+ext)
	if err := utils.ArchiveExportToGCS(ctx, objectKey, file); err != nil {
		config.LogError(logger, "main", "archiveRawExport", "archive raw export", map[string]any{"object_key": objectKey}, err)
		return ""
	}
	return objectKey
}

// discardArchivedExport removes the archived copy when ingestion failed and
// no batch row references it.
func discardArchivedExport(ctx context.Context, logger *logrus.Logger, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := utils.DeleteObjectFromGCS(ctx, objectKey); err != nil {
		config.LogError(logger, "main", "discardArchivedExport", "delete archived export", map[string]any{"object_key": objectKey}, err)
	}
}

func stampRawObjectKey(ctx context.Context, logger *logrus.Logger, batch any, objectKey string) {
	if objectKey == "" {
		return
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(batch).Update("raw_file_object_key", objectKey).Error; err != nil {
		config.LogError(logger, "main", "stampRawObjectKey", "persist raw file object key", map[string]any{"object_key": objectKey}, err)
	}
}

func respondIngestError(c *gin.Context, logger *logrus.Logger, funcName string, err error) {
	if errors.Is(err, utils.ErrorUnsupportedProvider) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.LogError(logger, "main", funcName, "ingest batch", nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest batch"})
}

// batchFileDownloadHandler signs a short-lived download link for the archived
// raw export of a batch.
func batchFileDownloadHandler(domain models.BatchDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := getSessionUser(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		batchId := c.Param("batchId")
		var objectKey string
		var err error
		switch domain {
		case models.BatchDomainInvoice:
			var batch *models.InvoiceBatchHistory
			batch, err = models.GetInvoiceBatchByBatchId(c.Request.Context(), batchId)
			if err == nil {
				objectKey = batch.RawFileObjectKey
			}
		default:
			var batch *models.InventoryBatchHistory
			batch, err = models.GetInventoryBatchByBatchId(c.Request.Context(), batchId)
			if err == nil {
				objectKey = batch.RawFileObjectKey
			}
		}
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		// Older batches stored a full URL instead of a raw key.
		objectKey = utils.ExtractObjectKeyFromURL(objectKey)
		if objectKey == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "no archived file for this batch"})
			return
		}

		if ok, err := utils.ObjectExistsInGCS(c.Request.Context(), objectKey); err != nil || !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "archived file no longer exists"})
			return
		}

		signed, err := utils.SignDownload(c.Request.Context(), objectKey, 15*time.Minute)
		if err != nil {
			// No signer available (e.g. local dev without a service account
			// key). Stream the object through the server instead.
			logger := config.GetLogger()
			config.LogError(logger, "main", "batchFileDownloadHandler", "sign download", map[string]any{"object_key": objectKey}, err)
			streamArchivedExport(c, objectKey)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"download_url": signed.DownloadURL,
			"access_url":   signed.AccessURL,
			"expires_at":   signed.ExpiresAt.UTC().Format(time.RFC3339),
		}})
	}
}

func streamArchivedExport(c *gin.Context, objectKey string) {
	client, err := utils.GetGCSClient(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage client error"})
		return
	}
	defer client.Close()

	bucket := strings.TrimSpace(os.Getenv("GCS_BUCKET"))
	if bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "GCS_BUCKET is required"})
		return
	}
	obj := client.Bucket(bucket).Object(objectKey)
	attrs, err := obj.Attrs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}
	reader, err := obj.NewReader(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "object not found"})
		return
	}
	defer reader.Close()

	if attrs.ContentType != "" {
		c.Writer.Header().Set("Content-Type", attrs.ContentType)
	}
	if attrs.Size > 0 {
		c.Writer.Header().Set("Content-Length", fmt.Sprintf("%d", attrs.Size))
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func canUpload(user *models.User) bool {
	return user.Role == models.UserRoleAdmin || user.Role == models.UserRoleUploader
}

func canReview(user *models.User) bool {
	return user.Role == models.UserRoleAdmin || user.Role == models.UserRoleReviewer
}

func getSessionUser(ctx context.Context) (*models.User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, errors.New("unauthorized")
	}

	var user models.User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err == nil && exists {
		if !user.Active() {
			return nil, errors.New("unauthorized")
		}
		return &user, nil
	}

	db := config.GetDB()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, errors.New("unauthorized")
	}
	if !user.Active() {
		return nil, errors.New("unauthorized")
	}
	_ = config.SetRedisObject("User:"+username, &user, 30*time.Minute)
	return &user, nil
}

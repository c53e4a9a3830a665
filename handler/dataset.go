package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pricingxol/claimlens/model"
	"github.com/pricingxol/claimlens/pipeline"
	"github.com/pricingxol/claimlens/pkg/logger"
	"github.com/pricingxol/claimlens/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DatasetHandler struct {
	store       *service.DatasetStore
	pipelineCfg pipeline.Config
}

func NewDatasetHandler(pipelineCfg pipeline.Config) *DatasetHandler {
	return &DatasetHandler{
		store:       service.GetDatasetStore(),
		pipelineCfg: pipelineCfg,
	}
}

// Upload handles claims workbook upload
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only XLSX files are allowed"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	dataset := &model.Dataset{
		ID:        uuid.New().String(),
		Filename:  header.Filename,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}
	h.store.Save(dataset)

	// Run the pipeline in the background; clients poll the status endpoint.
	// Each run owns its parsed table outright, nothing is shared.
	go h.process(dataset.ID, data)

	c.JSON(http.StatusOK, gin.H{
		"id":       dataset.ID,
		"filename": dataset.Filename,
		"status":   dataset.Status,
	})
}

// process runs the cleaning pipeline for one uploaded workbook
func (h *DatasetHandler) process(datasetID string, data []byte) {
	ctx := context.WithValue(context.Background(), logger.DatasetIDKey, datasetID)
	logger.Info(ctx, "pipeline started", "bytes", len(data))

	h.store.UpdateStatus(datasetID, model.StatusProcessing, "")

	table, err := service.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		logger.Error(ctx, "workbook parse failed", "error", err)
		h.store.UpdateStatus(datasetID, model.StatusFailed, err.Error())
		return
	}

	result, err := pipeline.Run(table, h.pipelineCfg)
	if err != nil {
		// Schema failures are terminal and user-visible; the message
		// carries the exact missing column list.
		logger.Error(ctx, "pipeline failed", "error", err)
		h.store.UpdateStatus(datasetID, model.StatusFailed, err.Error())
		return
	}

	h.store.SetResult(datasetID, result.Claims, result.Quality)
	logger.Info(ctx, "pipeline completed",
		"initial_rows", result.Quality.InitialRows,
		"cleaned_rows", result.Quality.CleanedRows,
		"unique_claims", result.Quality.UniqueClaims,
	)
}

// List returns all datasets without their claim tables
func (h *DatasetHandler) List(c *gin.Context) {
	datasets := h.store.List()

	result := make([]gin.H, len(datasets))
	for i, ds := range datasets {
		result[i] = gin.H{
			"id":         ds.ID,
			"filename":   ds.Filename,
			"status":     ds.Status,
			"quality":    ds.Quality,
			"created_at": ds.CreatedAt.Format(time.RFC3339),
			"updated_at": ds.UpdatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"datasets": result})
}

// Get returns a dataset summary with its data-quality counts
func (h *DatasetHandler) Get(c *gin.Context) {
	ds := h.store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         ds.ID,
		"filename":   ds.Filename,
		"status":     ds.Status,
		"quality":    ds.Quality,
		"error_msg":  ds.ErrorMsg,
		"created_at": ds.CreatedAt.Format(time.RFC3339),
		"updated_at": ds.UpdatedAt.Format(time.RFC3339),
	})
}

// GetStatus returns the processing status of a dataset
func (h *DatasetHandler) GetStatus(c *gin.Context) {
	ds := h.store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        ds.ID,
		"status":    ds.Status,
		"error_msg": ds.ErrorMsg,
	})
}

// Claims returns the filtered enriched claims table
func (h *DatasetHandler) Claims(c *gin.Context) {
	ds, ok := h.completedDataset(c)
	if !ok {
		return
	}

	claims := selectionFromQuery(c).Apply(ds.Claims)

	c.JSON(http.StatusOK, gin.H{
		"claims":   claims,
		"total":    len(ds.Claims),
		"filtered": len(claims),
	})
}

// Aggregates returns the four summary views over the filtered claims
func (h *DatasetHandler) Aggregates(c *gin.Context) {
	ds, ok := h.completedDataset(c)
	if !ok {
		return
	}

	claims := selectionFromQuery(c).Apply(ds.Claims)
	c.JSON(http.StatusOK, pipeline.Aggregate(claims))
}

// Filters returns the distinct values per filterable dimension
func (h *DatasetHandler) Filters(c *gin.Context) {
	ds, ok := h.completedDataset(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, pipeline.FilterOptions(ds.Claims))
}

// Export streams the filtered claims table as an xlsx attachment
func (h *DatasetHandler) Export(c *gin.Context) {
	ds, ok := h.completedDataset(c)
	if !ok {
		return
	}

	claims := selectionFromQuery(c).Apply(ds.Claims)

	data, err := service.ExportWorkbook(claims, h.pipelineCfg.UnderwritingYear)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export workbook: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="claims-%s.xlsx"`, ds.ID))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Delete deletes a dataset
func (h *DatasetHandler) Delete(c *gin.Context) {
	ds := h.store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	h.store.Delete(ds.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Dataset deleted"})
}

// completedDataset fetches the dataset and rejects requests against runs
// that have not finished (or have failed) with a 409 carrying the status.
func (h *DatasetHandler) completedDataset(c *gin.Context) (*model.Dataset, bool) {
	ds := h.store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return nil, false
	}
	if ds.Status != model.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Dataset is not ready",
			"status":    ds.Status,
			"error_msg": ds.ErrorMsg,
		})
		return nil, false
	}
	return ds, true
}

func selectionFromQuery(c *gin.Context) pipeline.Selection {
	return pipeline.Selection{
		RiskCategories: c.QueryArray("risk"),
		Occupancies:    c.QueryArray("occupancy"),
		Causes:         c.QueryArray("cause"),
		Channels:       c.QueryArray("channel"),
	}
}

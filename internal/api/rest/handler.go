package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/issuance-vault/ledger/internal/api/middleware"
	"github.com/issuance-vault/ledger/internal/api/shared/dto"
	"github.com/issuance-vault/ledger/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// IssueAsset issues a new asset
	// POST /api/v1/assets
	IssueAsset(c *gin.Context)

	// ListAssets retrieves assets newest first
	// GET /api/v1/assets?status=<status>&clearance_status=<status>&settlement_rule=<rule>&limit=<limit>&offset=<offset>
	ListAssets(c *gin.Context)

	// GetAsset retrieves a single asset
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// SubmitClearance submits the fingerprinting result of an asset
	// POST /api/v1/assets/:id/clearance
	SubmitClearance(c *gin.Context)

	// RecordChainTx records the issuance transaction hash
	// POST /api/v1/assets/:id/chain-tx
	RecordChainTx(c *gin.Context)

	// GetCustodyChain retrieves the custody chain of an asset
	// GET /api/v1/assets/:id/custody
	GetCustodyChain(c *gin.Context)

	// RecordCustodyTransfer records a custody transfer
	// POST /api/v1/assets/:id/custody
	RecordCustodyTransfer(c *gin.Context)

	// RecordSettlementEvent records a settlement event and applies the settlement rule
	// POST /api/v1/assets/:id/settlements
	RecordSettlementEvent(c *gin.Context)

	// ListSettlementEvents retrieves settlement events newest first
	// GET /api/v1/assets/:id/settlements?limit=<limit>&offset=<offset>
	ListSettlementEvents(c *gin.Context)

	// Settle settles a cleared asset explicitly
	// POST /api/v1/assets/:id/settle
	Settle(c *gin.Context)

	// Fractionalize splits an asset into fractions
	// POST /api/v1/assets/:id/fractionalize
	Fractionalize(c *gin.Context)

	// GetFractionHoldings retrieves the fraction holdings of an asset
	// GET /api/v1/assets/:id/fractions
	GetFractionHoldings(c *gin.Context)

	// TransferFractions moves fractions between holders
	// POST /api/v1/assets/:id/fractions/transfer
	TransferFractions(c *gin.Context)

	// RecordFractionsTx records the fractionalization transaction hash
	// POST /api/v1/assets/:id/fractions-tx
	RecordFractionsTx(c *gin.Context)

	// GetChanges retrieves the changes journal in ascending cursor order
	// GET /api/v1/changes?anchor=<cursor>&limit=<limit>
	GetChanges(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// validatable is implemented by every request body
type validatable interface {
	Validate() error
}

// assetID parses the :id path parameter, responding on failure
func assetID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid asset id", c.Param("id"))
		return 0, false
	}
	return id, true
}

// bindRequest decodes and validates the JSON body, responding on failure
func bindRequest(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "validate request")
		return false
	}
	return true
}

// IssueAsset issues a new asset
func (h *handler) IssueAsset(c *gin.Context) {
	var req dto.IssueAssetRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.IssueAsset(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		respondError(c, err, "issue asset")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListAssets retrieves assets with optional filters
func (h *handler) ListAssets(c *gin.Context) {
	queryParams, err := ParseListAssetsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListAssets(c.Request.Context(), queryParams.Filter())
	if err != nil {
		respondError(c, err, "list assets")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAsset retrieves a single asset by id
func (h *handler) GetAsset(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get asset")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitClearance submits the fingerprinting result of an asset
func (h *handler) SubmitClearance(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.ClearanceRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.SubmitClearance(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "submit clearance")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RecordChainTx records the issuance transaction hash
func (h *handler) RecordChainTx(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.TxHashRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.RecordChainTx(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "record chain tx")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCustodyChain retrieves the custody chain of an asset
func (h *handler) GetCustodyChain(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetCustodyChain(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get custody chain")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RecordCustodyTransfer records a custody transfer
func (h *handler) RecordCustodyTransfer(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.CustodyTransferRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.RecordCustodyTransfer(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "record custody transfer")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RecordSettlementEvent records a settlement event and applies the settlement rule
func (h *handler) RecordSettlementEvent(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.SettlementEventRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.RecordSettlementEvent(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "record settlement event")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListSettlementEvents retrieves settlement events newest first
func (h *handler) ListSettlementEvents(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	queryParams, err := ParseListSettlementsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListSettlementEvents(c.Request.Context(), id, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err, "list settlement events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Settle settles a cleared asset explicitly
func (h *handler) Settle(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.SettlementEventRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.Settle(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "settle")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Fractionalize splits an asset into fractions
func (h *handler) Fractionalize(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.FractionalizeRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.Fractionalize(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "fractionalize")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetFractionHoldings retrieves the fraction holdings of an asset
func (h *handler) GetFractionHoldings(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetFractionHoldings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get fraction holdings")
		return
	}

	c.JSON(http.StatusOK, response)
}

// TransferFractions moves fractions between holders
func (h *handler) TransferFractions(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.FractionTransferRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.TransferFractions(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "transfer fractions")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RecordFractionsTx records the fractionalization transaction hash
func (h *handler) RecordFractionsTx(c *gin.Context) {
	id, ok := assetID(c)
	if !ok {
		return
	}

	var req dto.TxHashRequest
	if !bindRequest(c, &req) {
		return
	}

	response, err := h.executor.RecordFractionsTx(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		respondError(c, err, "record fractions tx")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChanges retrieves the changes journal after the anchor
func (h *handler) GetChanges(c *gin.Context) {
	queryParams, err := ParseGetChangesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetChanges(c.Request.Context(), queryParams.Anchor, queryParams.Limit)
	if err != nil {
		respondError(c, err, "get changes")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: "issuance-ledger",
	})
}

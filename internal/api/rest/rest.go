package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/issuance-vault/ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, every one authenticated
	v1 := router.Group("/api/v1", middleware.Auth(authCfg))
	{
		// Assets
		v1.POST("/assets", handler.IssueAsset)
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.POST("/assets/:id/clearance", handler.SubmitClearance)
		v1.POST("/assets/:id/chain-tx", handler.RecordChainTx)

		// Custody
		v1.GET("/assets/:id/custody", handler.GetCustodyChain)
		v1.POST("/assets/:id/custody", handler.RecordCustodyTransfer)

		// Settlement
		v1.POST("/assets/:id/settlements", handler.RecordSettlementEvent)
		v1.GET("/assets/:id/settlements", handler.ListSettlementEvents)
		v1.POST("/assets/:id/settle", handler.Settle)

		// Fractions
		v1.POST("/assets/:id/fractionalize", handler.Fractionalize)
		v1.GET("/assets/:id/fractions", handler.GetFractionHoldings)
		v1.POST("/assets/:id/fractions/transfer", handler.TransferFractions)
		v1.POST("/assets/:id/fractions-tx", handler.RecordFractionsTx)

		// Changes journal
		v1.GET("/changes", handler.GetChanges)
	}
}

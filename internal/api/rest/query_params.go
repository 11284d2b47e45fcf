package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/issuance-vault/ledger/internal/api/shared/constants"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/store"
)

// ListAssetsQueryParams holds query parameters for GET /assets
type ListAssetsQueryParams struct {
	// Filters
	Statuses          []domain.AssetStatus     `form:"status"`
	ClearanceStatuses []domain.ClearanceStatus `form:"clearance_status"`
	SettlementRules   []domain.SettlementRule  `form:"settlement_rule"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ListSettlementsQueryParams holds query parameters for GET /assets/:id/settlements
type ListSettlementsQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// GetChangesQueryParams holds query parameters for GET /changes
type GetChangesQueryParams struct {
	// Anchor returns entries with a cursor strictly greater than it
	Anchor *uint64 `form:"anchor"`
	Limit  int     `form:"limit,default=50"`
}

// ParseListAssetsQuery parses query parameters for GET /assets
func ParseListAssetsQuery(c *gin.Context) (*ListAssetsQueryParams, error) {
	var params ListAssetsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	params.Limit = capLimit(params.Limit)

	return &params, nil
}

// Validate validates the filters of GET /assets
func (p *ListAssetsQueryParams) Validate() error {
	for _, s := range p.Statuses {
		if !s.Valid() {
			return fmt.Errorf("invalid status: %s", s)
		}
	}
	for _, s := range p.ClearanceStatuses {
		if !s.Valid() {
			return fmt.Errorf("invalid clearance_status: %s", s)
		}
	}
	for _, r := range p.SettlementRules {
		if !r.Valid() {
			return fmt.Errorf("invalid settlement_rule: %s", r)
		}
	}
	return nil
}

// Filter converts the parameters to a store filter
func (p *ListAssetsQueryParams) Filter() store.AssetQueryFilter {
	return store.AssetQueryFilter{
		Statuses:          p.Statuses,
		ClearanceStatuses: p.ClearanceStatuses,
		SettlementRules:   p.SettlementRules,
		Limit:             p.Limit,
		Offset:            p.Offset,
	}
}

// ParseListSettlementsQuery parses query parameters for GET /assets/:id/settlements
func ParseListSettlementsQuery(c *gin.Context) (*ListSettlementsQueryParams, error) {
	var params ListSettlementsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Limit = capLimit(params.Limit)
	return &params, nil
}

// ParseGetChangesQuery parses query parameters for GET /changes
func ParseGetChangesQuery(c *gin.Context) (*GetChangesQueryParams, error) {
	var params GetChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Limit = capLimit(params.Limit)
	return &params, nil
}

func capLimit(limit int) int {
	if limit > constants.MAX_PAGE_SIZE {
		return constants.MAX_PAGE_SIZE
	}
	if limit < 1 {
		return 1
	}
	return limit
}

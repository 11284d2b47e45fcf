package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/issuance-vault/ledger/internal/api/shared/constants"
	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/api/shared/executor"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/store"
)

// Resolver is the root resolver that holds executor
type Resolver struct {
	executor executor.Executor
}

// NewResolver creates a new root resolver with executor
func NewResolver(exec executor.Executor) *Resolver {
	return &Resolver{
		executor: exec,
	}
}

// queryObject is the Query root. Introspection fields answer from schema.
type queryObject struct {
	resolver *Resolver
	schema   *ast.Schema
}

func (q *queryObject) typeName() string { return "Query" }

func (q *queryObject) resolve(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	r := q.resolver

	switch field {
	case "asset":
		id, err := requiredUint64Arg(args, "id")
		if err != nil {
			return nil, err
		}
		asset, err := r.executor.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		return &assetObject{resolver: r, asset: asset}, nil

	case "assets":
		filter, err := assetFilterArgs(args)
		if err != nil {
			return nil, err
		}
		list, err := r.executor.ListAssets(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &assetListObject{resolver: r, list: list}, nil

	case "custody_chain":
		assetID, err := requiredUint64Arg(args, "asset_id")
		if err != nil {
			return nil, err
		}
		return r.custodyChain(ctx, assetID)

	case "settlements":
		assetID, err := requiredUint64Arg(args, "asset_id")
		if err != nil {
			return nil, err
		}
		return r.settlements(ctx, assetID, args)

	case "fraction_holdings":
		assetID, err := requiredUint64Arg(args, "asset_id")
		if err != nil {
			return nil, err
		}
		return r.fractionHoldings(ctx, assetID)

	case "changes":
		anchor, err := uint64Arg(args, "anchor")
		if err != nil {
			return nil, err
		}
		limit, err := limitArg(args, constants.DEFAULT_CHANGES_LIMIT)
		if err != nil {
			return nil, err
		}
		changes, err := r.executor.GetChanges(ctx, anchor, limit)
		if err != nil {
			return nil, err
		}
		return &changeListObject{list: changes}, nil

	case "__schema":
		return &schemaObject{schema: q.schema}, nil

	case "__type":
		name, _ := args["name"].(string)
		return namedTypeObject(q.schema, q.schema.Types[name]), nil
	}

	return nil, fmt.Errorf("unknown field %s.%s", q.typeName(), field)
}

func (r *Resolver) custodyChain(ctx context.Context, assetID uint64) (interface{}, error) {
	chain, err := r.executor.GetCustodyChain(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &custodyChainObject{chain: chain}, nil
}

func (r *Resolver) settlements(ctx context.Context, assetID uint64, args map[string]interface{}) (interface{}, error) {
	limit, err := limitArg(args, constants.DEFAULT_SETTLEMENTS_LIMIT)
	if err != nil {
		return nil, err
	}
	offset, err := uint64Arg(args, "offset")
	if err != nil {
		return nil, err
	}

	var off uint64
	if offset != nil {
		off = *offset
	}

	list, err := r.executor.ListSettlementEvents(ctx, assetID, limit, off)
	if err != nil {
		return nil, err
	}
	return &settlementEventListObject{list: list}, nil
}

func (r *Resolver) fractionHoldings(ctx context.Context, assetID uint64) (interface{}, error) {
	ledger, err := r.executor.GetFractionHoldings(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &fractionLedgerObject{ledger: ledger}, nil
}

func assetFilterArgs(args map[string]interface{}) (store.AssetQueryFilter, error) {
	var filter store.AssetQueryFilter

	for _, s := range stringListArg(args, "status") {
		filter.Statuses = append(filter.Statuses, domain.AssetStatus(s))
	}
	for _, s := range stringListArg(args, "clearance_status") {
		filter.ClearanceStatuses = append(filter.ClearanceStatuses, domain.ClearanceStatus(s))
	}
	for _, s := range stringListArg(args, "settlement_rule") {
		filter.SettlementRules = append(filter.SettlementRules, domain.SettlementRule(s))
	}

	limit, err := limitArg(args, constants.DEFAULT_ASSETS_LIMIT)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit

	offset, err := uint64Arg(args, "offset")
	if err != nil {
		return filter, err
	}
	if offset != nil {
		filter.Offset = *offset
	}

	return filter, nil
}

func requiredUint64Arg(args map[string]interface{}, name string) (uint64, error) {
	v, err := uint64Arg(args, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, apierrors.NewBadRequestError("Missing argument", name)
	}
	return *v, nil
}

func uint64Arg(args map[string]interface{}, name string) (*uint64, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	var v Uint64
	if err := v.UnmarshalGQL(raw); err != nil {
		return nil, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %v", name, err))
	}
	return ToNativeUint64(&v), nil
}

// limitArg reads a page size and clamps it to [1, MAX_PAGE_SIZE] like the REST query parameters
func limitArg(args map[string]interface{}, fallback int) (int, error) {
	raw, ok := args["limit"]
	if !ok || raw == nil {
		return fallback, nil
	}

	var limit int64
	switch v := raw.(type) {
	case int64:
		limit = v
	case int:
		limit = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("limit: %v is not an integer", v))
		}
		limit = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("limit: %v", err))
		}
		limit = n
	default:
		return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("limit: cannot use %T", raw))
	}

	switch {
	case limit > constants.MAX_PAGE_SIZE:
		return constants.MAX_PAGE_SIZE, nil
	case limit < 1:
		return 1, nil
	}
	return int(limit), nil
}

// stringListArg reads an enum list argument; a single value counts as a list of one
func stringListArg(args map[string]interface{}, name string) []string {
	switch v := args[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return values
	case []string:
		return v
	}
	return nil
}

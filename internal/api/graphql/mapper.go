package graphql

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	"github.com/issuance-vault/ledger/internal/api/shared/dto"
)

// assetObject maps dto.AssetResponse to the Asset type.
// custody, settlements and fractions call the executor only when selected.
type assetObject struct {
	resolver *Resolver
	asset    *dto.AssetResponse
}

func (o *assetObject) typeName() string { return "Asset" }

func (o *assetObject) resolve(ctx context.Context, field string, args map[string]interface{}) (interface{}, error) {
	a := o.asset

	switch field {
	case "id":
		return Uint64(a.ID), nil
	case "title":
		return graphql.MarshalString(a.Title), nil
	case "artist_display":
		return graphql.MarshalString(a.ArtistDisplay), nil
	case "year":
		return graphql.MarshalInt(a.Year), nil
	case "edition_total":
		return graphql.MarshalInt(a.EditionTotal), nil
	case "duration_seconds":
		return nullableFloat(a.DurationSeconds), nil
	case "provenance_text":
		return nullableString(a.ProvenanceText), nil
	case "original_holder_label":
		return graphql.MarshalString(a.OriginalHolderLabel), nil
	case "audio_ref":
		return nullableString(a.AudioRef), nil
	case "verification":
		return graphql.MarshalString(a.Verification), nil
	case "settlement_rule":
		return graphql.MarshalString(string(a.SettlementRule)), nil
	case "status":
		return graphql.MarshalString(string(a.Status)), nil
	case "clearance_status":
		return graphql.MarshalString(string(a.ClearanceStatus)), nil
	case "risk_score":
		return nullableFloat(a.RiskScore), nil
	case "fingerprint_hash":
		return nullableString(a.FingerprintHash), nil
	case "chain_tx_hash":
		return nullableString(a.ChainTxHash), nil
	case "fractions_tx_hash":
		return nullableString(a.FractionsTxHash), nil
	case "is_fractionalized":
		return graphql.MarshalBoolean(a.IsFractionalized), nil
	case "fraction_count":
		if a.FractionCount == nil {
			return nil, nil
		}
		return count(*a.FractionCount), nil
	case "created_at":
		return graphql.MarshalTime(a.CreatedAt), nil
	case "updated_at":
		return graphql.MarshalTime(a.UpdatedAt), nil
	case "custody":
		return o.resolver.custodyChain(ctx, a.ID)
	case "settlements":
		return o.resolver.settlements(ctx, a.ID, args)
	case "fractions":
		return o.resolver.fractionHoldings(ctx, a.ID)
	}

	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type assetListObject struct {
	resolver *Resolver
	list     *dto.AssetListResponse
}

func (o *assetListObject) typeName() string { return "AssetList" }

func (o *assetListObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "items":
		items := make([]object, len(o.list.Assets))
		for i := range o.list.Assets {
			items[i] = &assetObject{resolver: o.resolver, asset: &o.list.Assets[i]}
		}
		return items, nil
	case "offset":
		return nullableUint64(o.list.Offset), nil
	case "total":
		return Uint64(o.list.Total), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type custodyEventObject struct {
	event *dto.CustodyEventResponse
}

func (o *custodyEventObject) typeName() string { return "CustodyEvent" }

func (o *custodyEventObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	e := o.event
	switch field {
	case "id":
		return Uint64(e.ID), nil
	case "asset_id":
		return Uint64(e.AssetID), nil
	case "from_holder_label":
		return graphql.MarshalString(e.FromHolderLabel), nil
	case "to_holder_label":
		return graphql.MarshalString(e.ToHolderLabel), nil
	case "occurred_at":
		return graphql.MarshalTime(e.OccurredAt), nil
	case "created_at":
		return graphql.MarshalTime(e.CreatedAt), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type custodyChainObject struct {
	chain *dto.CustodyChainResponse
}

func (o *custodyChainObject) typeName() string { return "CustodyChain" }

func (o *custodyChainObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "items":
		items := make([]object, len(o.chain.Events))
		for i := range o.chain.Events {
			items[i] = &custodyEventObject{event: &o.chain.Events[i]}
		}
		return items, nil
	case "current_holder":
		return graphql.MarshalString(o.chain.CurrentHolder), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type settlementEventObject struct {
	event *dto.SettlementEventResponse
}

func (o *settlementEventObject) typeName() string { return "SettlementEvent" }

func (o *settlementEventObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	e := o.event
	switch field {
	case "id":
		return Uint64(e.ID), nil
	case "asset_id":
		return Uint64(e.AssetID), nil
	case "kind":
		return graphql.MarshalString(string(e.Kind)), nil
	case "occurred_at":
		return graphql.MarshalTime(e.OccurredAt), nil
	case "created_at":
		return graphql.MarshalTime(e.CreatedAt), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type settlementEventListObject struct {
	list *dto.SettlementEventListResponse
}

func (o *settlementEventListObject) typeName() string { return "SettlementEventList" }

func (o *settlementEventListObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "items":
		items := make([]object, len(o.list.Events))
		for i := range o.list.Events {
			items[i] = &settlementEventObject{event: &o.list.Events[i]}
		}
		return items, nil
	case "offset":
		return nullableUint64(o.list.Offset), nil
	case "total":
		return Uint64(o.list.Total), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type fractionHoldingObject struct {
	holding *dto.FractionHoldingResponse
}

func (o *fractionHoldingObject) typeName() string { return "FractionHolding" }

func (o *fractionHoldingObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	h := o.holding
	switch field {
	case "holder_address":
		return graphql.MarshalString(h.HolderAddress), nil
	case "holder_label":
		return nullableString(h.HolderLabel), nil
	case "fraction_amount":
		return count(h.FractionAmount), nil
	case "percentage":
		return graphql.MarshalFloat(h.Percentage), nil
	case "updated_at":
		return graphql.MarshalTime(h.UpdatedAt), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type fractionLedgerObject struct {
	ledger *dto.FractionHoldingListResponse
}

func (o *fractionLedgerObject) typeName() string { return "FractionLedger" }

func (o *fractionLedgerObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "asset_id":
		return Uint64(o.ledger.AssetID), nil
	case "fraction_count":
		return count(o.ledger.FractionCount), nil
	case "items":
		items := make([]object, len(o.ledger.Holdings))
		for i := range o.ledger.Holdings {
			items[i] = &fractionHoldingObject{holding: &o.ledger.Holdings[i]}
		}
		return items, nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type changeObject struct {
	change *dto.ChangeResponse
}

func (o *changeObject) typeName() string { return "Change" }

func (o *changeObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	c := o.change
	switch field {
	case "cursor":
		return Uint64(c.Cursor), nil
	case "subject_type":
		return graphql.MarshalString(string(c.SubjectType)), nil
	case "subject_id":
		return graphql.MarshalString(c.SubjectID), nil
	case "changed_at":
		return graphql.MarshalTime(c.ChangedAt), nil
	case "meta":
		if c.Meta == nil {
			return nil, nil
		}
		return JSON(c.Meta), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type changeListObject struct {
	list *dto.ChangeListResponse
}

func (o *changeListObject) typeName() string { return "ChangeList" }

func (o *changeListObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "items":
		items := make([]object, len(o.list.Changes))
		for i := range o.list.Changes {
			items[i] = &changeObject{change: &o.list.Changes[i]}
		}
		return items, nil
	case "next_anchor":
		return nullableUint64(o.list.NextAnchor), nil
	case "total":
		return Uint64(o.list.Total), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

// count maps a fraction count or amount, which the ledger keeps non-negative
func count(n int64) Uint64 {
	if n < 0 {
		return 0
	}
	return Uint64(n)
}

func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return graphql.MarshalString(s)
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return graphql.MarshalString(*s)
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return graphql.MarshalFloat(*f)
}

func nullableUint64(u *uint64) interface{} {
	if u == nil {
		return nil
	}
	return *FromNativeUint64(u)
}

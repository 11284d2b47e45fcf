package graphql_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issuance-vault/ledger/internal/api/graphql"
	"github.com/issuance-vault/ledger/internal/api/middleware"
	"github.com/issuance-vault/ledger/internal/api/shared/constants"
	"github.com/issuance-vault/ledger/internal/api/shared/dto"
	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
	"github.com/issuance-vault/ledger/internal/mocks"
	"github.com/issuance-vault/ledger/internal/store"
)

const testAPIKey = "test-key"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testHandler struct {
	router   *gin.Engine
	executor *mocks.MockAPIExecutor
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Path       []interface{}          `json:"path"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func newTestHandler(t *testing.T) *testHandler {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	h, err := graphql.NewHandler(exec)
	require.NoError(t, err)

	router := gin.New()
	graphql.SetupRoutes(router, h, middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &testHandler{router: router, executor: exec}
}

func (th *testHandler) query(t *testing.T, query string, variables map[string]interface{}) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)

	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleAsset(id uint64) *dto.AssetResponse {
	provenance := "Recorded live at the Vault, 1977"
	risk := 0.2
	count := int64(1000)
	return &dto.AssetResponse{
		ID:                  id,
		Title:               "Night Session",
		ArtistDisplay:       "The Quartet",
		Year:                1977,
		EditionTotal:        1,
		ProvenanceText:      &provenance,
		OriginalHolderLabel: "Estate",
		Verification:        "sha256:abc",
		SettlementRule:      domain.SettlementRuleOnFirstPlay,
		Status:              domain.AssetStatusIssued,
		ClearanceStatus:     domain.ClearanceStatusCleared,
		RiskScore:           &risk,
		IsFractionalized:    true,
		FractionCount:       &count,
		CreatedAt:           time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:           time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestAssetQuery(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().GetAsset(gomock.Any(), uint64(7)).Return(sampleAsset(7), nil)

	resp := th.query(t, `
		query Asset($id: Uint64!) {
			asset(id: $id) {
				__typename
				id
				name: title
				...rights
				audio_ref
			}
		}
		fragment rights on Asset {
			clearance_status
			risk_score
			fraction_count
		}`, map[string]interface{}{"id": "7"})

	require.Empty(t, resp.Errors)
	assert.Equal(t,
		`{"asset":{"__typename":"Asset","id":"7","name":"Night Session","clearance_status":"CLEARED","risk_score":0.2,"fraction_count":"1000","audio_ref":null}}`,
		string(resp.Data))
}

func TestAssetQuery_NotFound(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().GetAsset(gomock.Any(), uint64(99)).
		Return(nil, fmt.Errorf("%w: 99", domain.ErrAssetNotFound))

	resp := th.query(t, `{ asset(id: 99) { id title } }`, nil)

	assert.JSONEq(t, `{"asset":null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Not found", resp.Errors[0].Message)
	assert.Equal(t, []interface{}{"asset"}, resp.Errors[0].Path)
	assert.Equal(t, string(apierrors.ErrCodeNotFound), resp.Errors[0].Extensions["code"])
}

func TestAssetsQuery_FiltersAndPaging(t *testing.T) {
	th := newTestHandler(t)

	next := uint64(120)
	th.executor.EXPECT().ListAssets(gomock.Any(), store.AssetQueryFilter{
		Statuses:          []domain.AssetStatus{domain.AssetStatusIssued},
		ClearanceStatuses: []domain.ClearanceStatus{domain.ClearanceStatusCleared},
		Limit:             constants.MAX_PAGE_SIZE,
		Offset:            20,
	}).Return(&dto.AssetListResponse{
		Assets: []dto.AssetResponse{*sampleAsset(1), *sampleAsset(2)},
		Offset: &next,
		Total:  300,
	}, nil)

	resp := th.query(t, `
		query List($status: [AssetStatus!], $limit: Int) {
			assets(status: $status, clearance_status: [CLEARED], limit: $limit, offset: 20) {
				items { id }
				offset
				total
			}
		}`, map[string]interface{}{"status": []string{"ISSUED"}, "limit": 500})

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"assets":{"items":[{"id":"1"},{"id":"2"}],"offset":"120","total":"300"}}`, string(resp.Data))
}

func TestAssetsQuery_DefaultLimit(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().ListAssets(gomock.Any(), store.AssetQueryFilter{Limit: constants.DEFAULT_ASSETS_LIMIT}).
		Return(&dto.AssetListResponse{}, nil)

	resp := th.query(t, `{ assets { total offset } }`, nil)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"assets":{"total":"0","offset":null}}`, string(resp.Data))
}

func TestAssetNestedFields(t *testing.T) {
	t.Run("not selected means not loaded", func(t *testing.T) {
		th := newTestHandler(t)
		th.executor.EXPECT().GetAsset(gomock.Any(), uint64(3)).Return(sampleAsset(3), nil)

		resp := th.query(t, `{ asset(id: 3) { title } }`, nil)

		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"asset":{"title":"Night Session"}}`, string(resp.Data))
	})

	t.Run("selected fields load through the executor", func(t *testing.T) {
		th := newTestHandler(t)
		label := "Archive"
		th.executor.EXPECT().GetAsset(gomock.Any(), uint64(3)).Return(sampleAsset(3), nil)
		th.executor.EXPECT().GetCustodyChain(gomock.Any(), uint64(3)).Return(&dto.CustodyChainResponse{
			Events: []dto.CustodyEventResponse{
				{ID: 1, AssetID: 3, FromHolderLabel: "Estate", ToHolderLabel: "Archive"},
			},
			CurrentHolder: "Archive",
		}, nil)
		th.executor.EXPECT().ListSettlementEvents(gomock.Any(), uint64(3), 5, uint64(0)).
			Return(&dto.SettlementEventListResponse{
				Events: []dto.SettlementEventResponse{{ID: 4, AssetID: 3, Kind: domain.SettlementKindPlay}},
				Total:  1,
			}, nil)
		th.executor.EXPECT().GetFractionHoldings(gomock.Any(), uint64(3)).Return(&dto.FractionHoldingListResponse{
			AssetID:       3,
			FractionCount: 100,
			Holdings: []dto.FractionHoldingResponse{
				{HolderAddress: "0xa", HolderLabel: &label, FractionAmount: 75, Percentage: 75},
				{HolderAddress: "0xb", FractionAmount: 25, Percentage: 25},
			},
		}, nil)

		resp := th.query(t, `{
			asset(id: 3) {
				custody { current_holder items { from_holder_label to_holder_label } }
				settlements(limit: 5) { total items { kind } }
				fractions { fraction_count items { holder_address holder_label fraction_amount percentage } }
			}
		}`, nil)

		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"asset":{
			"custody":{"current_holder":"Archive","items":[{"from_holder_label":"Estate","to_holder_label":"Archive"}]},
			"settlements":{"total":"1","items":[{"kind":"PLAY"}]},
			"fractions":{"fraction_count":"100","items":[
				{"holder_address":"0xa","holder_label":"Archive","fraction_amount":"75","percentage":75},
				{"holder_address":"0xb","holder_label":null,"fraction_amount":"25","percentage":25}
			]}
		}}`, string(resp.Data))
	})
}

func TestNonNullFieldErrorNullsParent(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().GetCustodyChain(gomock.Any(), uint64(5)).Return(nil, fmt.Errorf("connection reset"))

	resp := th.query(t, `{ custody_chain(asset_id: 5) { current_holder } }`, nil)

	assert.Equal(t, "null", string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Internal server error", resp.Errors[0].Message)
	assert.Equal(t, string(apierrors.ErrCodeInternalError), resp.Errors[0].Extensions["code"])
	assert.NotContains(t, resp.Errors[0].Message, "connection reset")
}

func TestDomainErrorsCarryCodes(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().GetFractionHoldings(gomock.Any(), uint64(8)).
		Return(nil, fmt.Errorf("%w: asset 8 is UNCHECKED", domain.ErrNotCleared))

	resp := th.query(t, `{ fraction_holdings(asset_id: 8) { fraction_count } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Asset not cleared", resp.Errors[0].Message)
	assert.Equal(t, string(apierrors.ErrCodeNotCleared), resp.Errors[0].Extensions["code"])
	assert.Equal(t, "asset not cleared: asset 8 is UNCHECKED", resp.Errors[0].Extensions["details"])
}

func TestChangesQuery(t *testing.T) {
	th := newTestHandler(t)

	next := uint64(12)
	th.executor.EXPECT().GetChanges(gomock.Any(), gomock.Any(), constants.DEFAULT_CHANGES_LIMIT).
		DoAndReturn(func(_ context.Context, anchor *uint64, _ int) (*dto.ChangeListResponse, error) {
			require.NotNil(t, anchor)
			assert.Equal(t, uint64(10), *anchor)
			return &dto.ChangeListResponse{
				Changes: []dto.ChangeResponse{
					{Cursor: 11, SubjectType: "custody", SubjectID: "3", Meta: json.RawMessage(`{"to":"Archive"}`)},
					{Cursor: 12, SubjectType: "asset", SubjectID: "3"},
				},
				NextAnchor: &next,
				Total:      5,
			}, nil
		})

	resp := th.query(t, `query($anchor: Uint64) {
		changes(anchor: $anchor) { items { cursor subject_type subject_id meta } next_anchor total }
	}`, map[string]interface{}{"anchor": 10})

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"changes":{"items":[
		{"cursor":"11","subject_type":"custody","subject_id":"3","meta":{"to":"Archive"}},
		{"cursor":"12","subject_type":"asset","subject_id":"3","meta":null}
	],"next_anchor":"12","total":"5"}}`, string(resp.Data))
}

func TestSkipAndInclude(t *testing.T) {
	th := newTestHandler(t)
	th.executor.EXPECT().GetAsset(gomock.Any(), uint64(1)).Return(sampleAsset(1), nil)

	resp := th.query(t, `query($withYear: Boolean!) {
		asset(id: 1) {
			title @skip(if: true)
			year @include(if: $withYear)
			... on Asset @include(if: false) { status }
			edition_total
		}
	}`, map[string]interface{}{"withYear": true})

	require.Empty(t, resp.Errors)
	assert.Equal(t, `{"asset":{"year":1977,"edition_total":1}}`, string(resp.Data))
}

func TestInvalidQueries(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		variables map[string]interface{}
		contains  string
	}{
		{
			name:     "unknown field",
			query:    `{ asset(id: 1) { owner } }`,
			contains: "owner",
		},
		{
			name:     "missing required argument",
			query:    `{ custody_chain { current_holder } }`,
			contains: "asset_id",
		},
		{
			name:      "invalid enum variable",
			query:     `query($s: [AssetStatus!]) { assets(status: $s) { total } }`,
			variables: map[string]interface{}{"s": []string{"BURNED"}},
			contains:  "BURNED",
		},
		{
			name:     "mutations are not part of the schema",
			query:    `mutation { settle(id: 1) }`,
			contains: "mutation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)

			resp := th.query(t, tt.query, tt.variables)

			assert.Equal(t, "null", string(resp.Data))
			require.NotEmpty(t, resp.Errors)
			messages := make([]string, len(resp.Errors))
			for i, e := range resp.Errors {
				messages[i] = strings.ToLower(e.Message)
			}
			assert.Contains(t, strings.Join(messages, "\n"), strings.ToLower(tt.contains))
		})
	}
}

func TestInvalidUint64Argument(t *testing.T) {
	th := newTestHandler(t)

	resp := th.query(t, `query($id: Uint64!) { asset(id: $id) { id } }`, map[string]interface{}{"id": "-4"})

	assert.JSONEq(t, `{"asset":null}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, string(apierrors.ErrCodeBadRequest), resp.Errors[0].Extensions["code"])
}

func TestIntrospection(t *testing.T) {
	th := newTestHandler(t)

	resp := th.query(t, `{
		__schema { queryType { name } mutationType { name } }
		__type(name: "Asset") {
			kind
			fields { name type { kind ofType { name } } }
		}
	}`, nil)

	require.Empty(t, resp.Errors)

	var data struct {
		Schema struct {
			QueryType    struct{ Name string } `json:"queryType"`
			MutationType *struct{ Name string } `json:"mutationType"`
		} `json:"__schema"`
		Type struct {
			Kind   string `json:"kind"`
			Fields []struct {
				Name string `json:"name"`
				Type struct {
					Kind   string `json:"kind"`
					OfType *struct {
						Name string `json:"name"`
					} `json:"ofType"`
				} `json:"type"`
			} `json:"fields"`
		} `json:"__type"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))

	assert.Equal(t, "Query", data.Schema.QueryType.Name)
	assert.Nil(t, data.Schema.MutationType)
	assert.Equal(t, "OBJECT", data.Type.Kind)

	fields := map[string]string{}
	for _, f := range data.Type.Fields {
		if f.Type.OfType != nil {
			fields[f.Name] = f.Type.Kind + ":" + f.Type.OfType.Name
		} else {
			fields[f.Name] = f.Type.Kind
		}
	}
	assert.Equal(t, "NON_NULL:Uint64", fields["id"])
	assert.Equal(t, "NON_NULL:CustodyChain", fields["custody"])
	assert.Equal(t, "SCALAR", fields["audio_ref"])
}

func TestGraphQLRequiresAuth(t *testing.T) {
	th := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ assets { total } }"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMalformedBody(t *testing.T) {
	th := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)

	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlayground(t *testing.T) {
	th := newTestHandler(t)

	w := httptest.NewRecorder()
	th.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html")
}

package graphql

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/issuance-vault/ledger/internal/api/middleware"
	"github.com/issuance-vault/ledger/internal/api/shared/executor"
	"github.com/issuance-vault/ledger/internal/logger"
)

//go:embed schema.graphql
var schemaSDL string

// Handler defines the interface for GraphQL API handlers
type Handler interface {
	// HandleGraphQL handles GraphQL queries
	HandleGraphQL(c *gin.Context)

	// HandlePlayground serves the GraphQL Playground
	HandlePlayground(c *gin.Context)
}

// gqlHandler executes read-only queries over the API executor
type gqlHandler struct {
	schema *ast.Schema
	root   object
}

// NewHandler creates a new GraphQL handler
func NewHandler(exec executor.Executor) (Handler, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return nil, fmt.Errorf("failed to load graphql schema: %w", err)
	}

	return &gqlHandler{
		schema: schema,
		root:   &queryObject{resolver: NewResolver(exec), schema: schema},
	}, nil
}

// HandleGraphQL processes GraphQL queries
func (h *gqlHandler) HandleGraphQL(c *gin.Context) {
	var params graphql.RawParams
	decoder := json.NewDecoder(c.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&params); err != nil {
		c.JSON(http.StatusBadRequest, &graphql.Response{
			Errors: gqlerror.List{gqlerror.Errorf("json request body could not be decoded: %s", err)},
		})
		return
	}

	resp := h.exec(c.Request.Context(), &params)
	c.JSON(http.StatusOK, resp)
}

func (h *gqlHandler) exec(ctx context.Context, params *graphql.RawParams) (resp *graphql.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = &graphql.Response{Errors: gqlerror.List{RecoverFunc(ctx, r)}}
		}
	}()

	resp = execute(ctx, h.schema, h.root, params)
	if len(resp.Errors) > 0 {
		logger.DebugCtx(ctx, "GraphQL operation returned errors",
			zap.String("operation", params.OperationName),
			zap.Int("errors", len(resp.Errors)),
		)
	}
	return resp
}

// HandlePlayground serves the GraphQL Playground interface
func (h *gqlHandler) HandlePlayground(c *gin.Context) {
	playground.Handler("Issuance Ledger GraphQL Playground", "/graphql").ServeHTTP(c.Writer, c.Request)
}

// SetupRoutes configures GraphQL API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// GraphQL endpoint, authenticated like the REST API
	router.POST("/graphql", middleware.Auth(authCfg), handler.HandleGraphQL)

	// GraphQL Playground (GET for interactive IDE)
	router.GET("/graphql", handler.HandlePlayground)
}

package handlers

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/LeviOP/wealthwise/internal/graph"
	"github.com/LeviOP/wealthwise/internal/http/respond"
)

const maxGraphQLBody = 1 << 20

// GraphQLHandler serves POST /graphql. The caller's identity must already
// be on the request context.
type GraphQLHandler struct {
	schema *graph.Schema
}

// NewGraphQLHandler constructs the handler.
func NewGraphQLHandler(schema *graph.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// Register attaches the GraphQL route to the mux.
func (h *GraphQLHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/graphql", h.handle)
}

func (h *GraphQLHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req graph.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGraphQLBody)).Decode(&req); err != nil {
		respond.Raw(w, http.StatusBadRequest, errorsOnly("invalid JSON payload"))
		return
	}
	if req.Query == "" {
		respond.Raw(w, http.StatusBadRequest, errorsOnly("query is required"))
		return
	}
	respond.Raw(w, http.StatusOK, h.schema.Execute(r.Context(), req))
}

func errorsOnly(message string) map[string]any {
	return map[string]any{
		"errors": []map[string]string{{"message": message}},
	}
}

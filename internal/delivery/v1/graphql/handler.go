package graphql

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	gql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const maxRequestBody = 1 << 20

var errMutationOverGet = errors.New("mutations are only allowed over POST")

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ResponseError — элемент errors в ответе: всегда message и path.
type ResponseError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path"`
}

type response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// Handler исполняет GraphQL-запросы (POST с JSON-телом и GET с query-параметрами).
// Через GET выполняются только query-операции.
// Каждая ошибка ответа логируется до отправки клиенту.
type Handler struct {
	schema *gql.Schema
	logger logger.Logger
}

func NewHandler(schema *gql.Schema, logger logger.Logger) *Handler {
	return &Handler{schema: schema, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		h.logger.Warnf("graphql: bad request: %v", err)
		writeJSON(w, http.StatusBadRequest, response{
			Errors: []ResponseError{{Message: err.Error()}},
		})
		return
	}

	if r.Method == http.MethodGet && !queryOnly(req.Query) {
		h.logger.Warnf("graphql: %v, operation %q", errMutationOverGet, req.OperationName)
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, response{
			Errors: []ResponseError{{Message: errMutationOverGet.Error()}},
		})
		return
	}

	res := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	out := response{Data: res.Data}
	for _, qe := range res.Errors {
		h.logError(req.OperationName, qe)
		out.Errors = append(out.Errors, ResponseError{Message: qe.Message, Path: qe.Path})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) decode(r *http.Request) (*request, error) {
	var req request

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return nil, errors.New("variables must be a JSON object")
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody)).Decode(&req); err != nil {
			return nil, errors.New("request body must be a JSON object with a query field")
		}
	default:
		return nil, e.ErrStatusBadRequest
	}

	if req.Query == "" {
		return nil, errors.New("query is required")
	}

	return &req, nil
}

// queryOnly сообщает, что в документе нет mutation и subscription.
// Документ с синтаксической ошибкой пропускается: её вернёт Exec.
func queryOnly(query string) bool {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return true
	}

	for _, op := range doc.Operations {
		if op.Operation != ast.Query {
			return false
		}
	}

	return true
}

func (h *Handler) logError(operation string, qe *gqlerrors.QueryError) {
	if qe.ResolverError != nil && isInternal(qe.ResolverError) {
		h.logger.Errorf(errors.Unwrap(qe.ResolverError), "graphql: operation %q, path %v", operation, qe.Path)
		return
	}

	h.logger.Warnf("graphql: operation %q, path %v: %s", operation, qe.Path, qe.Message)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

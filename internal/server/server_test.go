package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/service"
	"github.com/LeviOP/wealthwise/internal/storage/sqlite"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []gqlError     `json:"errors"`
}

// APITestSuite drives the full HTTP stack over an in-memory store.
type APITestSuite struct {
	suite.Suite
	store *sqlite.Store
	ts    *httptest.Server
	token string
}

func (suite *APITestSuite) SetupTest() {
	store, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(suite.T(), err)
	suite.store = store

	tokens := auth.NewTokenManager("api-secret", "wealthwise", time.Hour)
	logger := log.Discard()
	svc := service.New(store, tokens, logger)
	gate := auth.NewGate(tokens, store, logger)

	handler, err := NewHandler(config.Config{CORSOrigins: []string{"*"}}, svc, gate, logger)
	require.NoError(suite.T(), err)
	suite.ts = httptest.NewServer(handler)

	resp := suite.graphql("", `mutation ($email: String!) {
		register(email: $email, password: "secret123", firstName: "Ada", lastName: "Lovelace") {
			token
			user { id email }
		}
	}`, map[string]any{"email": "ada@example.com"})
	require.Empty(suite.T(), resp.Errors)
	suite.token = resp.Data["register"].(map[string]any)["token"].(string)
}

func (suite *APITestSuite) TearDownTest() {
	suite.ts.Close()
	suite.store.Close()
}

func (suite *APITestSuite) graphql(token, query string, variables map[string]any) gqlResponse {
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(suite.T(), err)

	req, err := http.NewRequest(http.MethodPost, suite.ts.URL+"/graphql", bytes.NewReader(body))
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var out gqlResponse
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (suite *APITestSuite) mustQuery(query string, variables map[string]any) map[string]any {
	resp := suite.graphql(suite.token, query, variables)
	require.Empty(suite.T(), resp.Errors, "unexpected errors: %+v", resp.Errors)
	return resp.Data
}

func (suite *APITestSuite) categoryID(name string) string {
	data := suite.mustQuery(`{ categories { id name type } }`, nil)
	for _, c := range data["categories"].([]any) {
		entry := c.(map[string]any)
		if entry["name"] == name {
			return entry["id"].(string)
		}
	}
	suite.T().Fatalf("category %q not found", name)
	return ""
}

func errorCode(resp gqlResponse) string {
	if len(resp.Errors) == 0 {
		return ""
	}
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

func (suite *APITestSuite) TestRegisterSeedsCategories() {
	data := suite.mustQuery(`{
		me { email firstName }
		categories { name }
		income: categoriesByType(type: income) { name }
		expense: categoriesByType(type: expense) { name }
	}`, nil)

	assert.Equal(suite.T(), "ada@example.com", data["me"].(map[string]any)["email"])
	assert.Len(suite.T(), data["categories"], 14)
	assert.Len(suite.T(), data["income"], 4)
	assert.Len(suite.T(), data["expense"], 10)
}

func (suite *APITestSuite) TestBudgetProgressScenario() {
	food := suite.categoryID("Food & Dining")

	created := suite.mustQuery(`mutation ($input: CreateBudgetInput!) {
		createBudget(input: $input) { id amount period spent remaining percentageUsed category { name } }
	}`, map[string]any{"input": map[string]any{
		"categoryId": food, "amount": 500, "period": "monthly", "startDate": "2024-03-01",
	}})
	budget := created["createBudget"].(map[string]any)
	assert.Equal(suite.T(), 0.0, budget["spent"])
	assert.Equal(suite.T(), "Food & Dining", budget["category"].(map[string]any)["name"])

	for _, tx := range []map[string]any{
		{"amount": 100, "type": "expense", "categoryId": food, "description": "Groceries", "date": "2024-03-05"},
		{"amount": 250, "type": "expense", "categoryId": food, "description": "Dinner out", "date": "2024-03-20T19:30:00Z"},
	} {
		suite.mustQuery(`mutation ($input: CreateTransactionInput!) {
			createTransaction(input: $input) { id }
		}`, map[string]any{"input": tx})
	}

	data := suite.mustQuery(`query ($id: ID!) {
		budget(id: $id) { spent remaining percentageUsed }
	}`, map[string]any{"id": budget["id"]})
	got := data["budget"].(map[string]any)
	assert.Equal(suite.T(), 350.0, got["spent"])
	assert.Equal(suite.T(), 150.0, got["remaining"])
	assert.Equal(suite.T(), 70.0, got["percentageUsed"])

	listed := suite.mustQuery(`{ budgetsByPeriod(period: monthly) { percentageUsed } }`, nil)
	require.Len(suite.T(), listed["budgetsByPeriod"], 1)

	ranged := suite.mustQuery(`{
		transactionsByDateRange(startDate: "2024-03-01", endDate: "2024-03-05") { description }
	}`, nil)
	assert.Len(suite.T(), ranged["transactionsByDateRange"], 1, "a date-only end covers the whole day")
}

func (suite *APITestSuite) TestTransactionLifecycle() {
	food := suite.categoryID("Food & Dining")
	housing := suite.categoryID("Housing")

	created := suite.mustQuery(`mutation ($input: CreateTransactionInput!) {
		createTransaction(input: $input) { id amount type description category { id } }
	}`, map[string]any{"input": map[string]any{
		"amount": 12.5, "type": "expense", "categoryId": food, "description": "Lunch",
	}})
	tx := created["createTransaction"].(map[string]any)
	assert.Equal(suite.T(), 12.5, tx["amount"])
	id := tx["id"]

	updated := suite.mustQuery(`mutation ($id: ID!, $input: UpdateTransactionInput!) {
		updateTransaction(id: $id, input: $input) { amount description category { id } }
	}`, map[string]any{"id": id, "input": map[string]any{"categoryId": housing}})
	got := updated["updateTransaction"].(map[string]any)
	assert.Equal(suite.T(), 12.5, got["amount"])
	assert.Equal(suite.T(), "Lunch", got["description"])
	assert.Equal(suite.T(), housing, got["category"].(map[string]any)["id"])

	// The transaction survives its category and reports no category.
	suite.mustQuery(`mutation ($id: ID!) { deleteCategory(id: $id) }`, map[string]any{"id": housing})
	orphan := suite.mustQuery(`query ($id: ID!) { transaction(id: $id) { id category { id } } }`, map[string]any{"id": id})
	assert.Nil(suite.T(), orphan["transaction"].(map[string]any)["category"])

	deleted := suite.mustQuery(`mutation ($id: ID!) { deleteTransaction(id: $id) }`, map[string]any{"id": id})
	assert.Equal(suite.T(), true, deleted["deleteTransaction"])

	gone := suite.mustQuery(`query ($id: ID!) { transaction(id: $id) { id } }`, map[string]any{"id": id})
	assert.Nil(suite.T(), gone["transaction"])
}

func (suite *APITestSuite) TestErrorCodes() {
	anon := suite.graphql("", `{ categories { id } }`, nil)
	assert.Equal(suite.T(), "UNAUTHENTICATED", errorCode(anon))
	assert.Equal(suite.T(), "not authenticated", anon.Errors[0].Message)

	forged := suite.graphql("not-a-jwt", `{ me { id } }`, nil)
	assert.Equal(suite.T(), "UNAUTHENTICATED", errorCode(forged))

	badLogin := suite.graphql("", `mutation { login(email: "ada@example.com", password: "wrong-one") { token } }`, nil)
	assert.Equal(suite.T(), "INVALID_CREDENTIALS", errorCode(badLogin))

	dup := suite.graphql("", `mutation {
		register(email: "ada@example.com", password: "secret123", firstName: "A", lastName: "B") { token }
	}`, nil)
	assert.Equal(suite.T(), "CONFLICT", errorCode(dup))

	missing := suite.graphql(suite.token, `mutation { deleteBudget(id: "missing") }`, nil)
	assert.Equal(suite.T(), "NOT_FOUND", errorCode(missing))
	assert.Equal(suite.T(), "budget not found", missing.Errors[0].Message)

	negative := suite.graphql(suite.token, `mutation ($input: CreateTransactionInput!) {
		createTransaction(input: $input) { id }
	}`, map[string]any{"input": map[string]any{
		"amount": -5, "type": "expense", "categoryId": suite.categoryID("Housing"), "description": "x",
	}})
	assert.Equal(suite.T(), "BAD_USER_INPUT", errorCode(negative))

	badDate := suite.graphql(suite.token, `{ transactionsByDateRange(startDate: "yesterday", endDate: "2024-01-01") { id } }`, nil)
	assert.Equal(suite.T(), "BAD_USER_INPUT", errorCode(badDate))

	anonymousBadArgs := map[string]string{
		"reversed range":   `{ transactionsByDateRange(startDate: "2024-03-10", endDate: "2024-03-01") { id } }`,
		"unparsable date":  `mutation { createTransaction(input: {amount: 5, type: expense, categoryId: "c", description: "x", date: "nope"}) { id } }`,
		"blank category":   `{ transactionsByCategory(categoryId: " ") { id } }`,
		"blank budget cat": `{ budgetsByCategory(categoryId: "") { id } }`,
		"bad start date":   `mutation { updateBudget(id: "b", input: {startDate: "soon"}) { id } }`,
	}
	for name, query := range anonymousBadArgs {
		resp := suite.graphql("", query, nil)
		assert.Equal(suite.T(), "UNAUTHENTICATED", errorCode(resp), name)
	}

	nothing := suite.mustQuery(`{ budget(id: "missing") { id } category(id: "missing") { id } }`, nil)
	assert.Nil(suite.T(), nothing["budget"])
	assert.Nil(suite.T(), nothing["category"])
}

func (suite *APITestSuite) TestCrossUserIsolation() {
	food := suite.categoryID("Food & Dining")
	suite.mustQuery(`mutation ($input: CreateBudgetInput!) { createBudget(input: $input) { id } }`,
		map[string]any{"input": map[string]any{"categoryId": food, "amount": 100, "period": "yearly"}})

	other := suite.graphql("", `mutation {
		register(email: "eve@example.com", password: "secret123", firstName: "Eve", lastName: "E") { token }
	}`, nil)
	require.Empty(suite.T(), other.Errors)
	eve := other.Data["register"].(map[string]any)["token"].(string)

	peek := suite.graphql(eve, `query ($id: ID!) { category(id: $id) { id } budgetsByCategory(categoryId: $id) { id } }`,
		map[string]any{"id": food})
	require.Empty(suite.T(), peek.Errors)
	assert.Nil(suite.T(), peek.Data["category"])
	assert.Empty(suite.T(), peek.Data["budgetsByCategory"])

	hijack := suite.graphql(eve, `mutation ($id: ID!) { updateCategory(id: $id, input: {name: "Mine"}) { id } }`,
		map[string]any{"id": food})
	assert.Equal(suite.T(), "NOT_FOUND", errorCode(hijack))
}

func (suite *APITestSuite) TestMalformedRequests() {
	resp, err := http.Post(suite.ts.URL+"/graphql", "application/json", bytes.NewBufferString("{"))
	require.NoError(suite.T(), err)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(suite.ts.URL + "/graphql")
	require.NoError(suite.T(), err)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

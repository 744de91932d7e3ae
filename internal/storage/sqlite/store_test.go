package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/storage"
)

// StoreTestSuite exercises the SQLite store against an in-memory database.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	user  models.User
	now   time.Time
}

func (suite *StoreTestSuite) SetupTest() {
	store, err := New(MemoryPath)
	require.NoError(suite.T(), err, "failed to create test database")
	suite.store = store
	suite.ctx = context.Background()
	suite.now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	suite.user = suite.createUser("owner@example.com")
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *StoreTestSuite) createUser(email string) models.User {
	user, err := suite.store.CreateUser(suite.ctx, models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "hash",
		CreatedAt:    suite.now,
	})
	require.NoError(suite.T(), err)
	return user
}

func (suite *StoreTestSuite) createCategory(userID, name string, kind models.EntryType) models.Category {
	c, err := suite.store.CreateCategory(suite.ctx, models.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      kind,
		CreatedAt: suite.now,
		UpdatedAt: suite.now,
	})
	require.NoError(suite.T(), err)
	return c
}

func (suite *StoreTestSuite) createTransaction(categoryID string, amount string, kind models.EntryType, date time.Time) models.Transaction {
	t, err := suite.store.CreateTransaction(suite.ctx, models.Transaction{
		ID:          uuid.NewString(),
		UserID:      suite.user.ID,
		Amount:      decimal.RequireFromString(amount),
		Type:        kind,
		CategoryID:  categoryID,
		Description: "test",
		Date:        date,
		CreatedAt:   suite.now,
		UpdatedAt:   suite.now,
	})
	require.NoError(suite.T(), err)
	return t
}

func (suite *StoreTestSuite) TestUserLookup() {
	byEmail, err := suite.store.FindByEmail(suite.ctx, "owner@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, byEmail.ID)
	assert.Equal(suite.T(), suite.now, byEmail.CreatedAt)

	_, err = suite.store.FindByID(suite.ctx, "missing")
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *StoreTestSuite) TestDuplicateEmail() {
	_, err := suite.store.CreateUser(suite.ctx, models.User{
		ID:        uuid.NewString(),
		Email:     "owner@example.com",
		CreatedAt: suite.now,
	})
	assert.ErrorIs(suite.T(), err, storage.ErrAlreadyExists)
}

func (suite *StoreTestSuite) TestCategoryUniqueness() {
	suite.createCategory(suite.user.ID, "Food", models.Expense)

	_, err := suite.store.CreateCategory(suite.ctx, models.Category{
		ID: uuid.NewString(), UserID: suite.user.ID, Name: "Food", Type: models.Expense,
		CreatedAt: suite.now, UpdatedAt: suite.now,
	})
	assert.ErrorIs(suite.T(), err, storage.ErrAlreadyExists)

	// Same name with the other direction is allowed.
	suite.createCategory(suite.user.ID, "Food", models.Income)

	// Same name for another user is allowed.
	other := suite.createUser("other@example.com")
	suite.createCategory(other.ID, "Food", models.Expense)
}

func (suite *StoreTestSuite) TestListCategoriesFilteredAndSorted() {
	suite.createCategory(suite.user.ID, "Salary", models.Income)
	suite.createCategory(suite.user.ID, "Housing", models.Expense)
	suite.createCategory(suite.user.ID, "Education", models.Expense)

	all, err := suite.store.ListCategories(suite.ctx, suite.user.ID, storage.CategoryFilter{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), all, 3)
	assert.Equal(suite.T(), "Education", all[0].Name)
	assert.Equal(suite.T(), "Housing", all[1].Name)
	assert.Equal(suite.T(), "Salary", all[2].Name)

	expenses, err := suite.store.ListCategories(suite.ctx, suite.user.ID, storage.CategoryFilter{Type: models.Expense})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), expenses, 2)
}

func (suite *StoreTestSuite) TestCreateCategoriesBatch() {
	batch := []models.Category{
		{ID: uuid.NewString(), UserID: suite.user.ID, Name: "A", Type: models.Income, CreatedAt: suite.now, UpdatedAt: suite.now},
		{ID: uuid.NewString(), UserID: suite.user.ID, Name: "B", Type: models.Expense, CreatedAt: suite.now, UpdatedAt: suite.now},
	}
	require.NoError(suite.T(), suite.store.CreateCategories(suite.ctx, batch))

	all, err := suite.store.ListCategories(suite.ctx, suite.user.ID, storage.CategoryFilter{})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
}

func (suite *StoreTestSuite) TestScopedAccess() {
	c := suite.createCategory(suite.user.ID, "Food", models.Expense)
	other := suite.createUser("intruder@example.com")

	_, err := suite.store.GetCategory(suite.ctx, other.ID, c.ID)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)

	c.UserID = other.ID
	c.Name = "Stolen"
	_, err = suite.store.UpdateCategory(suite.ctx, c)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)

	assert.ErrorIs(suite.T(), suite.store.DeleteCategory(suite.ctx, other.ID, c.ID), storage.ErrNotFound)
}

func (suite *StoreTestSuite) TestTransactionRoundTripAndOrdering() {
	c := suite.createCategory(suite.user.ID, "Food", models.Expense)
	older := suite.createTransaction(c.ID, "12.34", models.Expense, suite.now.AddDate(0, 0, -2))
	newer := suite.createTransaction(c.ID, "5", models.Income, suite.now)

	got, err := suite.store.GetTransaction(suite.ctx, suite.user.ID, older.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.RequireFromString("12.34").Equal(got.Amount))
	assert.Equal(suite.T(), suite.now.AddDate(0, 0, -2), got.Date)

	list, err := suite.store.ListTransactions(suite.ctx, suite.user.ID, storage.TransactionFilter{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), newer.ID, list[0].ID)
	assert.Equal(suite.T(), older.ID, list[1].ID)
}

func (suite *StoreTestSuite) TestListTransactionsByRange() {
	c := suite.createCategory(suite.user.ID, "Food", models.Expense)
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.createTransaction(c.ID, "1", models.Expense, start)
	suite.createTransaction(c.ID, "2", models.Expense, end)
	suite.createTransaction(c.ID, "3", models.Expense, end.Add(time.Hour*24))

	list, err := suite.store.ListTransactions(suite.ctx, suite.user.ID, storage.TransactionFilter{From: start, To: end})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), list, 2, "both bounds are inclusive")
}

func (suite *StoreTestSuite) TestSumExpenses() {
	food := suite.createCategory(suite.user.ID, "Food", models.Expense)
	rent := suite.createCategory(suite.user.ID, "Rent", models.Expense)
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	suite.createTransaction(food.ID, "100", models.Expense, from)
	suite.createTransaction(food.ID, "250.50", models.Expense, to.Add(-time.Microsecond))
	suite.createTransaction(food.ID, "999", models.Income, from.AddDate(0, 0, 3))
	suite.createTransaction(food.ID, "999", models.Expense, to)
	suite.createTransaction(rent.ID, "999", models.Expense, from.AddDate(0, 0, 3))

	sum, err := suite.store.SumExpenses(suite.ctx, suite.user.ID, food.ID, from, to)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.RequireFromString("350.50").Equal(sum), "got %s", sum)

	empty, err := suite.store.SumExpenses(suite.ctx, suite.user.ID, uuid.NewString(), from, to)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), empty.IsZero())
}

func (suite *StoreTestSuite) TestBudgetLifecycle() {
	c := suite.createCategory(suite.user.ID, "Food", models.Expense)
	b, err := suite.store.CreateBudget(suite.ctx, models.Budget{
		ID: uuid.NewString(), UserID: suite.user.ID, CategoryID: c.ID,
		Amount: decimal.NewFromInt(500), Period: models.Monthly,
		StartDate: suite.now, CreatedAt: suite.now, UpdatedAt: suite.now,
	})
	require.NoError(suite.T(), err)

	b.Amount = decimal.NewFromInt(750)
	b.Period = models.Yearly
	updated, err := suite.store.UpdateBudget(suite.ctx, b)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromInt(750).Equal(updated.Amount))
	assert.Equal(suite.T(), models.Yearly, updated.Period)

	monthly, err := suite.store.ListBudgets(suite.ctx, suite.user.ID, storage.BudgetFilter{Period: models.Monthly})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), monthly)

	byCategory, err := suite.store.ListBudgets(suite.ctx, suite.user.ID, storage.BudgetFilter{CategoryID: c.ID})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), byCategory, 1)

	require.NoError(suite.T(), suite.store.DeleteBudget(suite.ctx, suite.user.ID, b.ID))
	_, err = suite.store.GetBudget(suite.ctx, suite.user.ID, b.ID)
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *StoreTestSuite) TestDeleteCategoryKeepsReferences() {
	c := suite.createCategory(suite.user.ID, "Food", models.Expense)
	tx := suite.createTransaction(c.ID, "10", models.Expense, suite.now)

	require.NoError(suite.T(), suite.store.DeleteCategory(suite.ctx, suite.user.ID, c.ID))

	got, err := suite.store.GetTransaction(suite.ctx, suite.user.ID, tx.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), c.ID, got.CategoryID)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

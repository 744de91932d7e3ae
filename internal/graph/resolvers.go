package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/service"
)

type resolverFn func(p graphql.ResolveParams, id auth.Identity) (interface{}, error)

// resolve adapts fn to graphql-go for an operation that needs a signed-in
// caller. Anonymous callers are rejected before any argument is read.
func (s *Schema) resolve(operation string, fn resolverFn) graphql.FieldResolveFn {
	return s.wrap(operation, true, fn)
}

// resolvePublic is resolve for operations open to anonymous callers.
func (s *Schema) resolvePublic(operation string, fn resolverFn) graphql.FieldResolveFn {
	return s.wrap(operation, false, fn)
}

func (s *Schema) wrap(operation string, authenticated bool, fn resolverFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id := auth.FromContext(p.Context)
		if authenticated {
			if _, err := id.Require(); err != nil {
				return nil, s.fail(p.Context, operation, err)
			}
		}
		out, err := fn(p, id)
		if err != nil {
			return nil, s.fail(p.Context, operation, err)
		}
		return out, nil
	}
}

// orNull turns a not-found lookup into a null result.
func orNull(view interface{}, err error) (interface{}, error) {
	if errors.Is(err, service.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

func userView(u models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"createdAt": formatTime(u.CreatedAt),
	}
}

func authView(res service.AuthResult) map[string]interface{} {
	return map[string]interface{}{"token": res.Token, "user": userView(res.User)}
}

func categoryView(c models.Category) map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"name":      c.Name,
		"type":      string(c.Type),
		"createdAt": formatTime(c.CreatedAt),
		"updatedAt": formatTime(c.UpdatedAt),
	}
}

func categoryViews(cs []models.Category) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryView(c))
	}
	return out
}

func transactionView(t models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"amount":      floatOf(t.Amount),
		"type":        string(t.Type),
		"categoryId":  t.CategoryID,
		"description": t.Description,
		"date":        formatTime(t.Date),
		"createdAt":   formatTime(t.CreatedAt),
		"updatedAt":   formatTime(t.UpdatedAt),
	}
}

func transactionViews(ts []models.Transaction) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(ts))
	for _, t := range ts {
		out = append(out, transactionView(t))
	}
	return out
}

func budgetView(b models.BudgetProgress) map[string]interface{} {
	return map[string]interface{}{
		"id":             b.ID,
		"categoryId":     b.CategoryID,
		"amount":         floatOf(b.Amount),
		"period":         string(b.Period),
		"startDate":      formatTime(b.StartDate),
		"createdAt":      formatTime(b.CreatedAt),
		"updatedAt":      formatTime(b.UpdatedAt),
		"spent":          floatOf(b.Spent),
		"remaining":      floatOf(b.Remaining),
		"percentageUsed": floatOf(b.PercentageUsed),
	}
}

func budgetViews(bs []models.BudgetProgress) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(bs))
	for _, b := range bs {
		out = append(out, budgetView(b))
	}
	return out
}

// referencedCategory resolves the category field of transactions and budgets.
func (s *Schema) referencedCategory(p graphql.ResolveParams) (interface{}, error) {
	source, _ := p.Source.(map[string]interface{})
	categoryID, _ := source["categoryId"].(string)
	if categoryID == "" {
		return nil, nil
	}
	c, err := s.svc.Category(p.Context, auth.FromContext(p.Context), categoryID)
	view, err := orNull(categoryView(c), err)
	if err != nil {
		return nil, s.fail(p.Context, "category", err)
	}
	return view, nil
}

func (s *Schema) me(_ graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	user, err := s.svc.Me(id)
	if err != nil {
		return nil, err
	}
	return userView(user), nil
}

func (s *Schema) login(p graphql.ResolveParams, _ auth.Identity) (interface{}, error) {
	res, err := s.svc.Login(p.Context, stringArg(p.Args, "email"), stringArg(p.Args, "password"))
	if err != nil {
		return nil, err
	}
	return authView(res), nil
}

func (s *Schema) register(p graphql.ResolveParams, _ auth.Identity) (interface{}, error) {
	res, err := s.svc.Register(p.Context, service.RegisterInput{
		Email:     stringArg(p.Args, "email"),
		Password:  stringArg(p.Args, "password"),
		FirstName: stringArg(p.Args, "firstName"),
		LastName:  stringArg(p.Args, "lastName"),
	})
	if err != nil {
		return nil, err
	}
	return authView(res), nil
}

// Categories

func (s *Schema) categories(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	cs, err := s.svc.Categories(p.Context, id)
	if err != nil {
		return nil, err
	}
	return categoryViews(cs), nil
}

func (s *Schema) category(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	c, err := s.svc.Category(p.Context, id, stringArg(p.Args, "id"))
	return orNull(categoryView(c), err)
}

func (s *Schema) categoriesByType(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	cs, err := s.svc.CategoriesByType(p.Context, id, models.EntryType(stringArg(p.Args, "type")))
	if err != nil {
		return nil, err
	}
	return categoryViews(cs), nil
}

func (s *Schema) createCategory(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	c, err := s.svc.CreateCategory(p.Context, id, service.CategoryInput{
		Name: stringArg(in, "name"),
		Type: models.EntryType(stringArg(in, "type")),
	})
	if err != nil {
		return nil, err
	}
	return categoryView(c), nil
}

func (s *Schema) updateCategory(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	c, err := s.svc.UpdateCategory(p.Context, id, stringArg(p.Args, "id"), service.CategoryPatch{
		Name: optionalString(in, "name"),
		Type: optionalEntryType(in, "type"),
	})
	if err != nil {
		return nil, err
	}
	return categoryView(c), nil
}

func (s *Schema) deleteCategory(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	return s.svc.DeleteCategory(p.Context, id, stringArg(p.Args, "id"))
}

// Transactions

func (s *Schema) transactions(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	ts, err := s.svc.Transactions(p.Context, id)
	if err != nil {
		return nil, err
	}
	return transactionViews(ts), nil
}

func (s *Schema) transaction(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	t, err := s.svc.Transaction(p.Context, id, stringArg(p.Args, "id"))
	return orNull(transactionView(t), err)
}

func (s *Schema) transactionsByCategory(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	ts, err := s.svc.TransactionsByCategory(p.Context, id, stringArg(p.Args, "categoryId"))
	if err != nil {
		return nil, err
	}
	return transactionViews(ts), nil
}

func (s *Schema) transactionsByDateRange(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	start, _, err := parseDate("startDate", stringArg(p.Args, "startDate"))
	if err != nil {
		return nil, err
	}
	end, dateOnly, err := parseDate("endDate", stringArg(p.Args, "endDate"))
	if err != nil {
		return nil, err
	}
	if dateOnly {
		end = endOfDay(end)
	}
	ts, err := s.svc.TransactionsByDateRange(p.Context, id, start, end)
	if err != nil {
		return nil, err
	}
	return transactionViews(ts), nil
}

func (s *Schema) createTransaction(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	amount, err := optionalAmount(in, "amount")
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return nil, badInput("amount is required")
	}
	date, err := optionalDate(in, "date")
	if err != nil {
		return nil, err
	}
	t, err := s.svc.CreateTransaction(p.Context, id, service.TransactionInput{
		Amount:      *amount,
		Type:        models.EntryType(stringArg(in, "type")),
		CategoryID:  stringArg(in, "categoryId"),
		Description: stringArg(in, "description"),
		Date:        date,
	})
	if err != nil {
		return nil, err
	}
	return transactionView(t), nil
}

func (s *Schema) updateTransaction(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	amount, err := optionalAmount(in, "amount")
	if err != nil {
		return nil, err
	}
	date, err := optionalDate(in, "date")
	if err != nil {
		return nil, err
	}
	t, err := s.svc.UpdateTransaction(p.Context, id, stringArg(p.Args, "id"), service.TransactionPatch{
		Amount:      amount,
		Type:        optionalEntryType(in, "type"),
		CategoryID:  optionalString(in, "categoryId"),
		Description: optionalString(in, "description"),
		Date:        date,
	})
	if err != nil {
		return nil, err
	}
	return transactionView(t), nil
}

func (s *Schema) deleteTransaction(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	return s.svc.DeleteTransaction(p.Context, id, stringArg(p.Args, "id"))
}

// Budgets

func (s *Schema) budgets(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	bs, err := s.svc.Budgets(p.Context, id)
	if err != nil {
		return nil, err
	}
	return budgetViews(bs), nil
}

func (s *Schema) budget(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	b, err := s.svc.Budget(p.Context, id, stringArg(p.Args, "id"))
	return orNull(budgetView(b), err)
}

func (s *Schema) budgetsByPeriod(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	bs, err := s.svc.BudgetsByPeriod(p.Context, id, models.Period(stringArg(p.Args, "period")))
	if err != nil {
		return nil, err
	}
	return budgetViews(bs), nil
}

func (s *Schema) budgetsByCategory(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	bs, err := s.svc.BudgetsByCategory(p.Context, id, stringArg(p.Args, "categoryId"))
	if err != nil {
		return nil, err
	}
	return budgetViews(bs), nil
}

func (s *Schema) createBudget(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	amount, err := optionalAmount(in, "amount")
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return nil, badInput("amount is required")
	}
	start, err := optionalDate(in, "startDate")
	if err != nil {
		return nil, err
	}
	b, err := s.svc.CreateBudget(p.Context, id, service.BudgetInput{
		CategoryID: stringArg(in, "categoryId"),
		Amount:     *amount,
		Period:     models.Period(stringArg(in, "period")),
		StartDate:  start,
	})
	if err != nil {
		return nil, err
	}
	return budgetView(b), nil
}

func (s *Schema) updateBudget(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	in := inputArg(p.Args)
	amount, err := optionalAmount(in, "amount")
	if err != nil {
		return nil, err
	}
	start, err := optionalDate(in, "startDate")
	if err != nil {
		return nil, err
	}
	b, err := s.svc.UpdateBudget(p.Context, id, stringArg(p.Args, "id"), service.BudgetPatch{
		Amount:    amount,
		Period:    optionalPeriod(in, "period"),
		StartDate: start,
	})
	if err != nil {
		return nil, err
	}
	return budgetView(b), nil
}

func (s *Schema) deleteBudget(p graphql.ResolveParams, id auth.Identity) (interface{}, error) {
	return s.svc.DeleteBudget(p.Context, id, stringArg(p.Args, "id"))
}

// Package graph exposes the finance service as a GraphQL schema.
package graph

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/service"
)

// Request is the JSON body of a GraphQL call.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Schema is the executable GraphQL schema bound to a service.
type Schema struct {
	svc    *service.Service
	logger *log.Logger
	schema graphql.Schema

	categoryType    *graphql.Object
	transactionType *graphql.Object
	budgetType      *graphql.Object
}

// New builds the schema.
func New(svc *service.Service, logger *log.Logger) (*Schema, error) {
	s := &Schema{svc: svc, logger: logger.WithComponent(log.ComponentGraphQL)}
	s.buildTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    s.queryType(),
		Mutation: s.mutationType(),
	})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Execute runs req with ctx as the resolver context. The caller's identity
// is read from ctx.
func (s *Schema) Execute(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

var (
	categoryTypeEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "CategoryType",
		Values: graphql.EnumValueConfigMap{
			string(models.Income):  &graphql.EnumValueConfig{Value: string(models.Income)},
			string(models.Expense): &graphql.EnumValueConfig{Value: string(models.Expense)},
		},
	})
	transactionTypeEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "TransactionType",
		Values: graphql.EnumValueConfigMap{
			string(models.Income):  &graphql.EnumValueConfig{Value: string(models.Income)},
			string(models.Expense): &graphql.EnumValueConfig{Value: string(models.Expense)},
		},
	})
	budgetPeriodEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "BudgetPeriod",
		Values: graphql.EnumValueConfigMap{
			string(models.Monthly): &graphql.EnumValueConfig{Value: string(models.Monthly)},
			string(models.Yearly):  &graphql.EnumValueConfig{Value: string(models.Yearly)},
		},
	})

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	authPayloadType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	createCategoryInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(categoryTypeEnum)},
		},
	})
	updateCategoryInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"type": &graphql.InputObjectFieldConfig{Type: categoryTypeEnum},
		},
	})
	createTransactionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"type":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(transactionTypeEnum)},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	updateTransactionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTransactionInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":      &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"type":        &graphql.InputObjectFieldConfig{Type: transactionTypeEnum},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	createBudgetInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateBudgetInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"categoryId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"amount":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"period":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(budgetPeriodEnum)},
			"startDate":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	updateBudgetInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateBudgetInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"period":    &graphql.InputObjectFieldConfig{Type: budgetPeriodEnum},
			"startDate": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
)

// buildTypes creates the object types whose fields resolve through the
// service.
func (s *Schema) buildTypes() {
	s.categoryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type":      &graphql.Field{Type: graphql.NewNonNull(categoryTypeEnum)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// category is null once the referenced category has been deleted.
	category := func() *graphql.Field {
		return &graphql.Field{Type: s.categoryType, Resolve: s.referencedCategory}
	}

	s.transactionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Transaction",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"amount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"type":        &graphql.Field{Type: graphql.NewNonNull(transactionTypeEnum)},
			"categoryId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"category":    category(),
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	s.budgetType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Budget",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"categoryId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"category":       category(),
			"amount":         &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"period":         &graphql.Field{Type: graphql.NewNonNull(budgetPeriodEnum)},
			"startDate":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"spent":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"remaining":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"percentageUsed": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
}

func idArg(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func listOf(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

func (s *Schema) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{Type: userType, Resolve: s.resolve("me", s.me)},

			"categories": &graphql.Field{
				Type:    listOf(s.categoryType),
				Resolve: s.resolve("categories", s.categories),
			},
			"category": &graphql.Field{
				Type:    s.categoryType,
				Args:    idArg("id"),
				Resolve: s.resolve("category", s.category),
			},
			"categoriesByType": &graphql.Field{
				Type: listOf(s.categoryType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryTypeEnum)},
				},
				Resolve: s.resolve("categoriesByType", s.categoriesByType),
			},

			"transactions": &graphql.Field{
				Type:    listOf(s.transactionType),
				Resolve: s.resolve("transactions", s.transactions),
			},
			"transaction": &graphql.Field{
				Type:    s.transactionType,
				Args:    idArg("id"),
				Resolve: s.resolve("transaction", s.transaction),
			},
			"transactionsByCategory": &graphql.Field{
				Type:    listOf(s.transactionType),
				Args:    idArg("categoryId"),
				Resolve: s.resolve("transactionsByCategory", s.transactionsByCategory),
			},
			"transactionsByDateRange": &graphql.Field{
				Type: listOf(s.transactionType),
				Args: graphql.FieldConfigArgument{
					"startDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"endDate":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolve("transactionsByDateRange", s.transactionsByDateRange),
			},

			"budgets": &graphql.Field{
				Type:    listOf(s.budgetType),
				Resolve: s.resolve("budgets", s.budgets),
			},
			"budget": &graphql.Field{
				Type:    s.budgetType,
				Args:    idArg("id"),
				Resolve: s.resolve("budget", s.budget),
			},
			"budgetsByPeriod": &graphql.Field{
				Type: listOf(s.budgetType),
				Args: graphql.FieldConfigArgument{
					"period": &graphql.ArgumentConfig{Type: graphql.NewNonNull(budgetPeriodEnum)},
				},
				Resolve: s.resolve("budgetsByPeriod", s.budgetsByPeriod),
			},
			"budgetsByCategory": &graphql.Field{
				Type:    listOf(s.budgetType),
				Args:    idArg("categoryId"),
				Resolve: s.resolve("budgetsByCategory", s.budgetsByCategory),
			},
		},
	})
}

func (s *Schema) mutationType() *graphql.Object {
	withInput := func(input *graphql.InputObject, withID bool) graphql.FieldConfigArgument {
		args := graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
		}
		if withID {
			args["id"] = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
		}
		return args
	}
	nonNullString := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    nonNullString,
					"password": nonNullString,
				},
				Resolve: s.resolvePublic("login", s.login),
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":     nonNullString,
					"password":  nonNullString,
					"firstName": nonNullString,
					"lastName":  nonNullString,
				},
				Resolve: s.resolvePublic("register", s.register),
			},

			"createCategory": &graphql.Field{
				Type:    graphql.NewNonNull(s.categoryType),
				Args:    withInput(createCategoryInput, false),
				Resolve: s.resolve("createCategory", s.createCategory),
			},
			"updateCategory": &graphql.Field{
				Type:    graphql.NewNonNull(s.categoryType),
				Args:    withInput(updateCategoryInput, true),
				Resolve: s.resolve("updateCategory", s.updateCategory),
			},
			"deleteCategory": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg("id"),
				Resolve: s.resolve("deleteCategory", s.deleteCategory),
			},

			"createTransaction": &graphql.Field{
				Type:    graphql.NewNonNull(s.transactionType),
				Args:    withInput(createTransactionInput, false),
				Resolve: s.resolve("createTransaction", s.createTransaction),
			},
			"updateTransaction": &graphql.Field{
				Type:    graphql.NewNonNull(s.transactionType),
				Args:    withInput(updateTransactionInput, true),
				Resolve: s.resolve("updateTransaction", s.updateTransaction),
			},
			"deleteTransaction": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg("id"),
				Resolve: s.resolve("deleteTransaction", s.deleteTransaction),
			},

			"createBudget": &graphql.Field{
				Type:    graphql.NewNonNull(s.budgetType),
				Args:    withInput(createBudgetInput, false),
				Resolve: s.resolve("createBudget", s.createBudget),
			},
			"updateBudget": &graphql.Field{
				Type:    graphql.NewNonNull(s.budgetType),
				Args:    withInput(updateBudgetInput, true),
				Resolve: s.resolve("updateBudget", s.updateBudget),
			},
			"deleteBudget": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArg("id"),
				Resolve: s.resolve("deleteBudget", s.deleteBudget),
			},
		},
	})
}

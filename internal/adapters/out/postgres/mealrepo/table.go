package mealrepo

import (
	"feedme/internal/adapters/out/postgres/listquery"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/querybuilder"
)

var mealTable = listquery.Table{
	Schema: ports.MealSchema,
	Columns: map[string]listquery.Column{
		"name":        {Name: "name"},
		"description": {Name: "description"},
		"category":    {Name: "category"},
		"isAvailable": {Name: "is_available"},
		"providerId":  {Name: "provider_id"},
		"price":       {Name: "price_cents", Convert: querybuilder.Cents},
		"rating":      {Name: "rating_average"},
		"createdAt":   {Name: "created_at"},
	},
	KeyColumn: "id",
}

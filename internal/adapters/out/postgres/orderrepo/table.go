package orderrepo

import (
	"feedme/internal/adapters/out/postgres/listquery"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/querybuilder"
)

var orderTable = listquery.Table{
	Schema: ports.OrderSchema,
	Columns: map[string]listquery.Column{
		"status":          {Name: "status", Convert: statusName},
		"trackingNumber":  {Name: "tracking_number"},
		"customerId":      {Name: "customer_id"},
		"totalPrice":      {Name: "total_cents", Convert: querybuilder.Cents},
		"deliveryAddress": {Name: "delivery_address"},
		"createdAt":       {Name: "created_at"},
	},
	KeyColumn: "id",
}

// statusName accepts any letter case and matches the stored name.
func statusName(v any) (any, bool) {
	raw, ok := v.(string)
	if !ok {
		return nil, false
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return nil, false
	}
	return status.String(), true
}

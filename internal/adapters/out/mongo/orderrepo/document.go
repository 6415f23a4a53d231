// Package orderrepo stores orders as MongoDB documents. Line items and the
// tracking log are embedded; tracking updates are appended with $push.
package orderrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
)

// CollectionName is the collection holding order documents.
const CollectionName = "orders"

type OrderDocument struct {
	ID                    string                   `bson:"_id"`
	CustomerID            string                   `bson:"customerId"`
	ProviderIDs           []string                 `bson:"providerIds"`
	Items                 []ItemDocument           `bson:"items"`
	DeliveryAddress       string                   `bson:"deliveryAddress"`
	SubtotalCents         int64                    `bson:"subtotalCents"`
	TaxCents              int64                    `bson:"taxCents"`
	ShippingCents         int64                    `bson:"shippingCents"`
	TotalCents            int64                    `bson:"totalCents"`
	Status                string                   `bson:"status"`
	PaymentReference      string                   `bson:"paymentReference,omitempty"`
	TrackingNumber        *string                  `bson:"trackingNumber,omitempty"`
	TrackingUpdates       []TrackingUpdateDocument `bson:"trackingUpdates"`
	EstimatedDeliveryDate *time.Time               `bson:"estimatedDeliveryDate,omitempty"`
	CreatedAt             time.Time                `bson:"createdAt"`
	UpdatedAt             time.Time                `bson:"updatedAt"`
}

type ItemDocument struct {
	MealID             string   `bson:"mealId"`
	ProviderID         string   `bson:"providerId"`
	Name               string   `bson:"name"`
	Quantity           int      `bson:"quantity"`
	UnitPriceCents     int64    `bson:"unitPriceCents"`
	AddOns             []string `bson:"addOns,omitempty"`
	RemovedIngredients []string `bson:"removedIngredients,omitempty"`
	SpiceLevel         string   `bson:"spiceLevel,omitempty"`
}

type TrackingUpdateDocument struct {
	Stage     string    `bson:"stage"`
	Message   string    `bson:"message"`
	Timestamp time.Time `bson:"timestamp"`
}

func fromDomain(o *order.Order) OrderDocument {
	providers := o.ProviderIDs()
	providerIDs := make([]string, 0, len(providers))
	for _, id := range providers {
		providerIDs = append(providerIDs, id.String())
	}

	items := make([]ItemDocument, 0, len(o.Items()))
	for _, item := range o.Items() {
		customization := item.Customization()
		items = append(items, ItemDocument{
			MealID:             item.MealID().String(),
			ProviderID:         item.ProviderID().String(),
			Name:               item.Name(),
			Quantity:           item.Quantity(),
			UnitPriceCents:     item.UnitPrice().Cents(),
			AddOns:             customization.AddOns,
			RemovedIngredients: customization.RemovedIngredients,
			SpiceLevel:         customization.SpiceLevel,
		})
	}

	var trackingNumber *string
	if number := o.TrackingNumber(); number != "" {
		trackingNumber = &number
	}

	return OrderDocument{
		ID:                    o.ID().String(),
		CustomerID:            o.CustomerID().String(),
		ProviderIDs:           providerIDs,
		Items:                 items,
		DeliveryAddress:       o.DeliveryAddress(),
		SubtotalCents:         o.Subtotal().Cents(),
		TaxCents:              o.Tax().Cents(),
		ShippingCents:         o.Shipping().Cents(),
		TotalCents:            o.Total().Cents(),
		Status:                o.Status().String(),
		PaymentReference:      o.PaymentReference(),
		TrackingNumber:        trackingNumber,
		TrackingUpdates:       trackingFromDomain(o.TrackingUpdates()),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
}

func trackingFromDomain(updates []order.TrackingUpdate) []TrackingUpdateDocument {
	docs := make([]TrackingUpdateDocument, 0, len(updates))
	for _, update := range updates {
		docs = append(docs, TrackingUpdateDocument{
			Stage:     update.Stage().String(),
			Message:   update.Message(),
			Timestamp: update.Timestamp(),
		})
	}
	return docs
}

func toDomain(doc OrderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(doc.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(doc.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(doc.Items))
	for _, itemDoc := range doc.Items {
		item, itemErr := itemToDomain(itemDoc)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	updates := make([]order.TrackingUpdate, 0, len(doc.TrackingUpdates))
	for _, updateDoc := range doc.TrackingUpdates {
		stage, stageErr := order.ParseStage(updateDoc.Stage)
		if stageErr != nil {
			return nil, stageErr
		}
		update, updateErr := order.NewTrackingUpdate(stage, updateDoc.Message, updateDoc.Timestamp)
		if updateErr != nil {
			return nil, updateErr
		}
		updates = append(updates, update)
	}

	var trackingNumber string
	if doc.TrackingNumber != nil {
		trackingNumber = *doc.TrackingNumber
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		CustomerID:            customerID,
		Items:                 items,
		DeliveryAddress:       doc.DeliveryAddress,
		Subtotal:              kernel.Money(doc.SubtotalCents),
		Tax:                   kernel.Money(doc.TaxCents),
		Shipping:              kernel.Money(doc.ShippingCents),
		Total:                 kernel.Money(doc.TotalCents),
		Status:                status,
		PaymentReference:      doc.PaymentReference,
		TrackingNumber:        trackingNumber,
		TrackingUpdates:       updates,
		EstimatedDeliveryDate: doc.EstimatedDeliveryDate,
		CreatedAt:             doc.CreatedAt,
		UpdatedAt:             doc.UpdatedAt,
	})
}

func itemToDomain(doc ItemDocument) (order.LineItem, error) {
	mealID, err := kernel.UUIDFromString(doc.MealID)
	if err != nil {
		return order.LineItem{}, err
	}
	providerID, err := kernel.UUIDFromString(doc.ProviderID)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(
		mealID,
		providerID,
		doc.Name,
		doc.Quantity,
		kernel.Money(doc.UnitPriceCents),
		order.Customization{
			AddOns:             doc.AddOns,
			RemovedIngredients: doc.RemovedIngredients,
			SpiceLevel:         doc.SpiceLevel,
		},
	)
}

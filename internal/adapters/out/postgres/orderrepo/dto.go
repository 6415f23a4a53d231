// Package orderrepo persists order aggregates with GORM.
//
// An order is one "orders" row plus its "order_items" and the append-only
// "order_tracking_updates" log. The distinct providers of the line items are
// denormalized into a text[] column so provider-scoped lists need no join.
package orderrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// OrderDTO is the "orders" row.
type OrderDTO struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProviderIDs           pq.StringArray      `gorm:"type:text[];not null"`
	DeliveryAddress       string              `gorm:"type:text;not null"`
	SubtotalCents         int64               `gorm:"not null"`
	TaxCents              int64               `gorm:"not null"`
	ShippingCents         int64               `gorm:"not null"`
	TotalCents            int64               `gorm:"not null"`
	Status                string              `gorm:"type:varchar(20);not null;index"`
	PaymentReference      string              `gorm:"type:varchar(255)"`
	TrackingNumber        *string             `gorm:"type:varchar(64);uniqueIndex"`
	EstimatedDeliveryDate *time.Time          `gorm:"type:timestamptz"`
	CreatedAt             time.Time           `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt             time.Time           `gorm:"not null;autoUpdateTime:false"`
	Items                 []OrderItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TrackingUpdates       []TrackingUpdateDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line item; Position keeps the checkout order.
type OrderItemDTO struct {
	ID             uint                                     `gorm:"primaryKey"`
	OrderID        uuid.UUID                                `gorm:"type:uuid;not null;index"`
	Position       int                                      `gorm:"not null"`
	MealID         uuid.UUID                                `gorm:"type:uuid;not null;index"`
	ProviderID     uuid.UUID                                `gorm:"type:uuid;not null"`
	Name           string                                   `gorm:"type:varchar(120);not null"`
	Quantity       int                                      `gorm:"not null"`
	UnitPriceCents int64                                    `gorm:"not null"`
	Customization  datatypes.JSONType[ItemCustomizationDTO] `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type ItemCustomizationDTO struct {
	AddOns             []string `json:"addOns"`
	RemovedIngredients []string `json:"removedIngredients"`
	SpiceLevel         string   `json:"spiceLevel"`
}

// TrackingUpdateDTO is one tracking log entry. Rows are only ever inserted.
type TrackingUpdateDTO struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Stage     string    `gorm:"type:varchar(20);not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (TrackingUpdateDTO) TableName() string {
	return "order_tracking_updates"
}

func fromDomain(o *order.Order) OrderDTO {
	providers := o.ProviderIDs()
	providerIDs := make(pq.StringArray, 0, len(providers))
	for _, id := range providers {
		providerIDs = append(providerIDs, id.String())
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		customization := item.Customization()
		items = append(items, OrderItemDTO{
			OrderID:        o.ID().Bytes(),
			Position:       i,
			MealID:         item.MealID().Bytes(),
			ProviderID:     item.ProviderID().Bytes(),
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Customization: datatypes.NewJSONType(ItemCustomizationDTO{
				AddOns:             customization.AddOns,
				RemovedIngredients: customization.RemovedIngredients,
				SpiceLevel:         customization.SpiceLevel,
			}),
		})
	}

	var trackingNumber *string
	if number := o.TrackingNumber(); number != "" {
		trackingNumber = &number
	}

	return OrderDTO{
		ID:                    o.ID().Bytes(),
		CustomerID:            o.CustomerID().Bytes(),
		ProviderIDs:           providerIDs,
		DeliveryAddress:       o.DeliveryAddress(),
		SubtotalCents:         o.Subtotal().Cents(),
		TaxCents:              o.Tax().Cents(),
		ShippingCents:         o.Shipping().Cents(),
		TotalCents:            o.Total().Cents(),
		Status:                o.Status().String(),
		PaymentReference:      o.PaymentReference(),
		TrackingNumber:        trackingNumber,
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Items:                 items,
		TrackingUpdates:       trackingFromDomain(o.ID(), o.TrackingUpdates()),
	}
}

func trackingFromDomain(orderID kernel.UUID, updates []order.TrackingUpdate) []TrackingUpdateDTO {
	dtos := make([]TrackingUpdateDTO, 0, len(updates))
	for _, update := range updates {
		dtos = append(dtos, TrackingUpdateDTO{
			OrderID:   orderID.Bytes(),
			Stage:     update.Stage().String(),
			Message:   update.Message(),
			Timestamp: update.Timestamp(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	updates := make([]order.TrackingUpdate, 0, len(dto.TrackingUpdates))
	for _, updateDTO := range dto.TrackingUpdates {
		stage, stageErr := order.ParseStage(updateDTO.Stage)
		if stageErr != nil {
			return nil, stageErr
		}
		update, updateErr := order.NewTrackingUpdate(stage, updateDTO.Message, updateDTO.Timestamp)
		if updateErr != nil {
			return nil, updateErr
		}
		updates = append(updates, update)
	}

	var trackingNumber string
	if dto.TrackingNumber != nil {
		trackingNumber = *dto.TrackingNumber
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		CustomerID:            customerID,
		Items:                 items,
		DeliveryAddress:       dto.DeliveryAddress,
		Subtotal:              kernel.Money(dto.SubtotalCents),
		Tax:                   kernel.Money(dto.TaxCents),
		Shipping:              kernel.Money(dto.ShippingCents),
		Total:                 kernel.Money(dto.TotalCents),
		Status:                status,
		PaymentReference:      dto.PaymentReference,
		TrackingNumber:        trackingNumber,
		TrackingUpdates:       updates,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	mealID, err := kernel.UUIDFromBytes(dto.MealID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	customization := dto.Customization.Data()
	return order.NewLineItem(
		mealID,
		providerID,
		dto.Name,
		dto.Quantity,
		kernel.Money(dto.UnitPriceCents),
		order.Customization{
			AddOns:             customization.AddOns,
			RemovedIngredients: customization.RemovedIngredients,
			SpiceLevel:         customization.SpiceLevel,
		},
	)
}

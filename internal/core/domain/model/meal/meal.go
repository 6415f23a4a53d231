package meal

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	// ErrMealIsNotConstructed is returned when a Meal was not created through
	// NewMeal or RestoreMeal.
	ErrMealIsNotConstructed = errors.New("Meal must be created via NewMeal or RestoreMeal constructor")
)

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 2000
)

// Details are the provider-editable attributes of a meal.
type Details struct {
	Name          string
	Description   string
	Price         kernel.Money
	Category      string
	ImageURL      string
	IsAvailable   bool
	Nutrition     Nutrition
	Customization Options
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name          *string
	Description   *string
	Price         *kernel.Money
	Category      *string
	ImageURL      *string
	IsAvailable   *bool
	Nutrition     *Nutrition
	Customization *Options
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Meal is the aggregate root of one catalog entry, owned by exactly one provider.
type Meal struct {
	id         kernel.UUID
	providerID kernel.UUID
	details    Details
	rating     Rating
	reviews    []Review
	createdAt  time.Time
	updatedAt  time.Time
	revision   int

	guard guard.ConstructorGuard
}

// Snapshot carries persisted state into RestoreMeal.
type Snapshot struct {
	ID          kernel.UUID
	ProviderID  kernel.UUID
	Details     Details
	RatingSum   int
	RatingCount int
	Reviews     []Review
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Revision    int
}

// NewMeal creates an unrated meal for providerID.
func NewMeal(id, providerID kernel.UUID, details Details, at time.Time) (*Meal, error) {
	m := &Meal{
		createdAt: at.UTC(),
		updatedAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setProviderID(providerID),
		m.setDetails(details),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMeal rebuilds a meal from storage.
func RestoreMeal(s Snapshot) (*Meal, error) {
	m := &Meal{
		reviews:   slices.Clone(s.Reviews),
		createdAt: s.CreatedAt.UTC(),
		updatedAt: s.UpdatedAt.UTC(),
		revision:  s.Revision,
		guard:     guard.NewConstructorGuard(),
	}

	rating, ratingErr := RestoreRating(s.RatingSum, s.RatingCount)
	if err := errors.Join(
		m.setID(s.ID),
		m.setProviderID(s.ProviderID),
		m.setDetails(s.Details),
		ratingErr,
	); err != nil {
		return nil, err
	}
	m.rating = rating

	return m, nil
}

func (m *Meal) Validate() error {
	if m == nil {
		return ErrMealIsNotConstructed
	}
	return m.guard.Validate(ErrMealIsNotConstructed)
}

func (m *Meal) IsEqual(other *Meal) bool {
	return other != nil && m.id.IsEqual(other.id)
}

func (m *Meal) ID() kernel.UUID {
	return m.id
}

func (m *Meal) ProviderID() kernel.UUID {
	return m.providerID
}

// IsOwnedBy reports whether userID is the meal's provider.
func (m *Meal) IsOwnedBy(userID kernel.UUID) bool {
	return m.providerID.IsEqual(userID)
}

func (m *Meal) Name() string {
	return m.details.Name
}

func (m *Meal) Description() string {
	return m.details.Description
}

func (m *Meal) Price() kernel.Money {
	return m.details.Price
}

func (m *Meal) Category() string {
	return m.details.Category
}

func (m *Meal) ImageURL() string {
	return m.details.ImageURL
}

func (m *Meal) IsAvailable() bool {
	return m.details.IsAvailable
}

func (m *Meal) Nutrition() Nutrition {
	return m.details.Nutrition
}

// Customization returns a copy of the customization options.
func (m *Meal) Customization() Options {
	return m.details.Customization.clone()
}

func (m *Meal) Rating() Rating {
	return m.rating
}

// Reviews returns a copy of the reviews, oldest first.
func (m *Meal) Reviews() []Review {
	return slices.Clone(m.reviews)
}

func (m *Meal) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Meal) UpdatedAt() time.Time {
	return m.updatedAt
}

// Revision counts the stored updates of the meal.
func (m *Meal) Revision() int {
	return m.revision
}

// Update applies a partial update. Nothing changes when the result is invalid.
func (m *Meal) Update(patch Patch, at time.Time) error {
	if patch.IsEmpty() {
		return errs.NewValueIsRequiredError("at least one field to update")
	}

	next := m.details
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}
	if patch.IsAvailable != nil {
		next.IsAvailable = *patch.IsAvailable
	}
	if patch.Nutrition != nil {
		next.Nutrition = *patch.Nutrition
	}
	if patch.Customization != nil {
		next.Customization = patch.Customization.clone()
	}

	if err := m.setDetails(next); err != nil {
		return err
	}
	if at.After(m.updatedAt) {
		m.updatedAt = at.UTC()
	}
	return nil
}

// UnitPrice prices one serving with the chosen add-ons, after checking that the
// meal is available, every removed ingredient is removable and the spice level
// is offered. An empty spice level keeps the default.
func (m *Meal) UnitPrice(addOns, removedIngredients []string, spiceLevel string) (kernel.Money, error) {
	if !m.details.IsAvailable {
		return 0, errs.NewValueIsInvalidErrorWithCause("mealId", fmt.Errorf("meal %s is not available", m.details.Name))
	}

	options := m.details.Customization
	price := m.details.Price
	for _, name := range addOns {
		addOn, ok := options.AddOn(name)
		if !ok {
			return 0, errs.NewValueIsInvalidErrorWithCause("addOns", fmt.Errorf("%q is not an add-on of %s", name, m.details.Name))
		}
		price = price.Add(addOn.Price)
	}
	for _, ingredient := range removedIngredients {
		if !options.isRemovable(ingredient) {
			return 0, errs.NewValueIsInvalidErrorWithCause(
				"removedIngredients",
				fmt.Errorf("%q cannot be removed from %s", ingredient, m.details.Name),
			)
		}
	}
	if strings.TrimSpace(spiceLevel) != "" && !options.hasSpiceLevel(spiceLevel) {
		return 0, errs.NewValueIsInvalidErrorWithCause("spiceLevel", fmt.Errorf("%q is not offered for %s", spiceLevel, m.details.Name))
	}

	return price, nil
}

// HasReviewFor reports whether orderID was already used to review the meal.
func (m *Meal) HasReviewFor(orderID kernel.UUID) bool {
	return slices.ContainsFunc(m.reviews, func(r Review) bool {
		return r.OrderID().IsEqual(orderID)
	})
}

// AddReview appends a review and folds its score into the rating.
// Each order can review a meal once.
func (m *Meal) AddReview(review Review) error {
	if err := review.OrderID().Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("review", err)
	}
	if m.HasReviewFor(review.OrderID()) {
		return errs.NewConflictErrorWithCause(
			"review",
			fmt.Errorf("order %s already reviewed meal %s", review.OrderID(), m.id),
		)
	}

	m.reviews = append(m.reviews, review)
	m.rating = m.rating.With(review.Score())
	return nil
}

func (m *Meal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Meal) setProviderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("providerId", err)
	}
	m.providerID = id
	return nil
}

func (m *Meal) setDetails(d Details) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if err := errors.Join(
		validateText("name", d.Name, MaxNameLength, true),
		validateText("description", d.Description, MaxDescriptionLength, false),
		validateText("category", d.Category, MaxNameLength, true),
		validatePrice(d.Price),
		validateImageURL(d.ImageURL),
		d.Nutrition.Validate(),
		d.Customization.Validate(),
	); err != nil {
		return err
	}

	d.Customization = d.Customization.clone()
	m.details = d
	return nil
}

func validateText(param, value string, maxLength int, required bool) error {
	if required && value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if len([]rune(value)) > maxLength {
		return errs.NewValueIsOutOfRangeError(param, len([]rune(value)), 0, maxLength)
	}
	return nil
}

func validatePrice(price kernel.Money) error {
	if price <= 0 {
		return errs.NewValueIsOutOfRangeError("price", price, "0.01", "unbounded")
	}
	return nil
}

func validateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("imageUrl", fmt.Errorf("%q is not an absolute http(s) URL", raw))
	}
	return nil
}

package meal

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
)

const (
	MinScore         = 1
	MaxScore         = 5
	MaxCommentLength = 1000
)

// Review is one customer's score for a meal, given through one delivered order.
type Review struct {
	userID    kernel.UUID
	orderID   kernel.UUID
	score     int
	comment   string
	createdAt time.Time
}

func NewReview(userID, orderID kernel.UUID, score int, comment string, createdAt time.Time) (Review, error) {
	comment = strings.TrimSpace(comment)

	var scoreErr error
	if score < MinScore || score > MaxScore {
		scoreErr = errs.NewValueIsOutOfRangeError("rating", score, MinScore, MaxScore)
	}
	var commentErr error
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		commentErr = errs.NewValueIsOutOfRangeError("comment", utf8.RuneCountInString(comment), 0, MaxCommentLength)
	}
	var createdErr error
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(userID.Validate(), orderID.Validate(), scoreErr, commentErr, createdErr); err != nil {
		return Review{}, err
	}

	return Review{
		userID:    userID,
		orderID:   orderID,
		score:     score,
		comment:   comment,
		createdAt: createdAt.UTC(),
	}, nil
}

func (r Review) UserID() kernel.UUID {
	return r.userID
}

func (r Review) OrderID() kernel.UUID {
	return r.orderID
}

// Score is the 1 to 5 rating.
func (r Review) Score() int {
	return r.score
}

func (r Review) Comment() string {
	return r.comment
}

func (r Review) CreatedAt() time.Time {
	return r.createdAt
}

// Rating aggregates review scores.
type Rating struct {
	sum   int
	count int
}

// RestoreRating rejects sums that no count of 1 to 5 scores can produce.
func RestoreRating(sum, count int) (Rating, error) {
	if count < 0 || sum < count*MinScore || sum > count*MaxScore {
		return Rating{}, errs.NewValueIsOutOfRangeError("rating.sum", sum, count*MinScore, count*MaxScore)
	}
	return Rating{sum: sum, count: count}, nil
}

func (r Rating) Sum() int {
	return r.sum
}

func (r Rating) Count() int {
	return r.count
}

// Average is zero for unrated meals.
func (r Rating) Average() float64 {
	if r.count == 0 {
		return 0
	}
	return float64(r.sum) / float64(r.count)
}

// With returns the rating after one more score.
func (r Rating) With(score int) Rating {
	return Rating{sum: r.sum + score, count: r.count + 1}
}

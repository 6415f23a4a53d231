package order_test

import (
	"fmt"
	"testing"

	"feedme/internal/core/domain/model/order"
	"feedme/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Processing,
	order.Paid,
	order.Approved,
	order.Processed,
	order.Shipped,
	order.Delivered,
	order.Cancelled,
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(8), order.Status(100)} {
		t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), "status is invalid")
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, status := range allStatuses {
		parsed, err := order.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	parsed, err := order.ParseStatus(" delivered ")
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, parsed)

	_, err = order.ParseStatus("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Stage(t *testing.T) {
	expected := map[order.Status]order.Stage{
		order.Processing: order.StagePlaced,
		order.Paid:       order.StagePlaced,
		order.Approved:   order.StageApproved,
		order.Processed:  order.StageProcessed,
		order.Shipped:    order.StageShipped,
		order.Delivered:  order.StageDelivered,
		order.Cancelled:  order.StageNone,
		order.Unknown:    order.StageNone,
	}

	for status, stage := range expected {
		assert.Equal(t, stage, status.Stage(), status.String())
	}
}

func TestStatus_Pay(t *testing.T) {
	next, err := order.Processing.Pay()
	require.NoError(t, err)
	assert.Equal(t, order.Paid, next)

	for _, status := range allStatuses[1:] {
		_, err := status.Pay()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, status.String())
	}
}

func TestStatus_Advance(t *testing.T) {
	tests := []struct {
		from     order.Status
		stage    order.Stage
		expected order.Status
	}{
		{order.Processing, order.StagePlaced, order.Processing},
		{order.Paid, order.StagePlaced, order.Paid},
		{order.Paid, order.StageApproved, order.Approved},
		{order.Paid, order.StageShipped, order.Shipped},
		{order.Approved, order.StageProcessed, order.Processed},
		{order.Processed, order.StageShipped, order.Shipped},
		{order.Shipped, order.StageShipped, order.Shipped},
		{order.Shipped, order.StageDelivered, order.Delivered},
		{order.Delivered, order.StageDelivered, order.Delivered},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.stage), func(t *testing.T) {
			next, err := tt.from.Advance(tt.stage)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, next)
		})
	}

	t.Run("should reject moving backwards", func(t *testing.T) {
		_, err := order.Shipped.Advance(order.StageApproved)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cannot move back from shipped to approved")
	})

	t.Run("should reject later stages before payment", func(t *testing.T) {
		for _, stage := range []order.Stage{order.StageApproved, order.StageProcessed, order.StageShipped, order.StageDelivered} {
			_, err := order.Processing.Advance(stage)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, stage.String())
			assert.Contains(t, err.Error(), "order must be paid before it can be "+stage.String())
		}
	})

	t.Run("should reject cancelled orders", func(t *testing.T) {
		_, err := order.Cancelled.Advance(order.StagePlaced)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown stages", func(t *testing.T) {
		_, err := order.Paid.Advance(order.StageNone)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Cancel(t *testing.T) {
	for _, status := range []order.Status{order.Processing, order.Paid, order.Approved} {
		next, err := status.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	}

	for _, status := range []order.Status{order.Processed, order.Shipped, order.Delivered, order.Cancelled, order.Unknown} {
		_, err := status.Cancel()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, status.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, status := range allStatuses {
		assert.Equal(t, status == order.Delivered || status == order.Cancelled, status.IsTerminal())
	}
}

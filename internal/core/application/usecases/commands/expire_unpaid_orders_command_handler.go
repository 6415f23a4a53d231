package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedme/internal/pkg/errs"
)

// ExpireUnpaidOrdersCommandHandler cancels stale unpaid orders in one
// transaction and returns how many were cancelled. Orders whose status changed
// after they were read are left alone.
type ExpireUnpaidOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpireUnpaidOrdersCommandHandler(uowFactory OrderUoWFactory) ExpireUnpaidOrdersCommandHandler {
	return ExpireUnpaidOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ExpireUnpaidOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireUnpaidOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	cutoff := now.Add(-cmd.TTL())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetUnpaidPlacedBefore(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	expired := 0
	for _, o := range orders {
		if !o.IsUnpaidSince(cutoff) {
			continue
		}
		if err = o.Cancel(now); err != nil {
			return 0, fmt.Errorf("cancel order %s: %w", o.ID(), err)
		}
		err = orderRepo.Update(ctx, o)
		if errors.Is(err, errs.ErrConflict) {
			// paid or cancelled since it was read
			continue
		}
		if err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return expired, nil
}

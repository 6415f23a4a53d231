package commands

import (
	"errors"
	"time"

	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrExpireUnpaidOrdersCommandIsNotConstructed = errors.New(
		"ExpireUnpaidOrdersCommand must be created via NewExpireUnpaidOrdersCommand constructor",
	)
)

// ExpireUnpaidOrdersCommand cancels up to batchSize orders that stayed in
// Processing for longer than ttl.
type ExpireUnpaidOrdersCommand struct {
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireUnpaidOrdersCommand(ttl time.Duration, batchSize int) (ExpireUnpaidOrdersCommand, error) {
	var ttlErr, batchErr error
	if ttl <= 0 {
		ttlErr = errs.NewValueIsInvalidError("ttl")
	}
	if batchSize <= 0 {
		batchErr = errs.NewValueIsInvalidError("batchSize")
	}
	if err := errors.Join(ttlErr, batchErr); err != nil {
		return ExpireUnpaidOrdersCommand{}, err
	}

	return ExpireUnpaidOrdersCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireUnpaidOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireUnpaidOrdersCommandIsNotConstructed)
}

func (c ExpireUnpaidOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c ExpireUnpaidOrdersCommand) BatchSize() int {
	return c.batchSize
}

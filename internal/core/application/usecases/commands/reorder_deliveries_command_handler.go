package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ReorderDeliveriesCommandHandler resequences a driver's deliveries from an
// explicit end-order batch.
//
// The batch is validated before anything is persisted:
//  1. A repeated end order number fails with bad-request.
//  2. A repeated delivery identifier fails with bad-request.
//  3. Every delivery identifier is resolved concurrently; entries whose
//     delivery does not exist are silently skipped.
//  4. Resolved deliveries are mutated sequentially in input order; a
//     delivery assigned to another driver fails with forbidden and aborts
//     the pass before anything is saved.
//  5. All mutated deliveries are persisted as one batched save in a single
//     transaction.
//
// Duplicate detection is a first-seen-wins linear scan over the batch in
// input order: the error fires on the first repeated value encountered.
type ReorderDeliveriesCommandHandler struct {
	uowFactory DeliveryUoWFactory
	deliveries ports.DeliveryRepository
}

// NewReorderDeliveriesCommandHandler creates a handler for delivery
// resequencing. The standalone repository performs the concurrent,
// non-transactional resolution step; the unit of work covers the batched
// save.
func NewReorderDeliveriesCommandHandler(
	uowFactory DeliveryUoWFactory,
	deliveries ports.DeliveryRepository,
) ReorderDeliveriesCommandHandler {
	return ReorderDeliveriesCommandHandler{
		uowFactory: uowFactory,
		deliveries: deliveries,
	}
}

// Handle processes the reorder command.
func (h ReorderDeliveriesCommandHandler) Handle(ctx context.Context, cmd ReorderDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := validateNoDuplicates(cmd.Orders()); err != nil {
		return err
	}

	resolved, err := h.resolveDeliveries(ctx, cmd.Orders())
	if err != nil {
		return err
	}

	mutated := make([]*delivery.Delivery, 0, len(resolved))
	for i, entry := range cmd.Orders() {
		aggregate := resolved[i]
		if aggregate == nil {
			continue
		}

		if err = aggregate.AssignEndOrder(cmd.DriverID(), entry.EndOrderNumber()); err != nil {
			return err
		}

		mutated = append(mutated, aggregate)
	}

	if len(mutated) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().UpdateAll(ctx, mutated); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// resolveDeliveries looks up every batch entry concurrently. The result slice
// is positionally aligned with the batch; a nil element marks an entry whose
// delivery does not exist.
func (h ReorderDeliveriesCommandHandler) resolveDeliveries(
	ctx context.Context,
	orders []ReorderEntry,
) ([]*delivery.Delivery, error) {
	resolved := make([]*delivery.Delivery, len(orders))
	lookupErrs := make([]error, len(orders))

	var wg sync.WaitGroup
	for i, entry := range orders {
		wg.Add(1)
		go func() {
			defer wg.Done()

			aggregate, err := h.deliveries.Get(ctx, entry.DeliveryID())
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return
				}
				lookupErrs[i] = err
				return
			}
			resolved[i] = aggregate
		}()
	}
	wg.Wait()

	if err := errors.Join(lookupErrs...); err != nil {
		return nil, err
	}

	return resolved, nil
}

func validateNoDuplicates(orders []ReorderEntry) error {
	seenNumbers := make(map[int]struct{}, len(orders))
	for _, entry := range orders {
		if _, ok := seenNumbers[entry.EndOrderNumber()]; ok {
			return errs.NewBadRequestError(
				fmt.Sprintf("duplicate end order number %d in reorder batch", entry.EndOrderNumber()))
		}
		seenNumbers[entry.EndOrderNumber()] = struct{}{}
	}

	seenIDs := make(map[int64]struct{}, len(orders))
	for _, entry := range orders {
		if _, ok := seenIDs[entry.DeliveryID().Int64()]; ok {
			return errs.NewBadRequestError(
				fmt.Sprintf("duplicate delivery id %s in reorder batch", entry.DeliveryID()))
		}
		seenIDs[entry.DeliveryID().Int64()] = struct{}{}
	}

	return nil
}

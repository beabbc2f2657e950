package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/services"
	"transtrack/internal/core/ports"
	"transtrack/internal/events"
	"transtrack/internal/metrics"
	"transtrack/internal/pkg/logging"
)

// DefaultImportWorkers bounds the creation concurrency of one batch.
const DefaultImportWorkers = 4

// ImportRowResult is the outcome for one input row, at its original
// position.
type ImportRowResult struct {
	Index       int
	Status      services.RowStatus
	Errors      []string
	Warnings    []string
	Skipped     bool
	OrderID     string
	OrderNumber string
}

// ImportResult aggregates a whole batch: header findings, per-row outcomes
// in input order and the totals.
type ImportResult struct {
	Header      services.HeaderReport
	Rows        []ImportRowResult
	TotalRows   int
	ValidRows   int
	WarningRows int
	InvalidRows int
	Created     int
}

// ImportOrdersCommandHandler validates a batch of raw rows and creates an
// order per surviving row. Row creations are independent and run on a
// bounded worker pool; the batch always waits for every row and reports
// outcomes in input order. Row failures of any kind stay on their row and
// never abort the batch.
type ImportOrdersCommandHandler struct {
	uowFactory UoWFactory
	validator  services.ImportValidator
	selector   services.TemplateSelector
	publisher  ports.EventPublisher
	logger     *slog.Logger
	workers    int
}

// NewImportOrdersCommandHandler creates a handler for bulk imports.
func NewImportOrdersCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewImportValidator(),
		selector:   services.NewTemplateSelector(),
		publisher:  publisher,
		logger:     logging.WithComponent("import_orders"),
		workers:    DefaultImportWorkers,
	}
}

// Handle validates and imports the batch. Invalid rows never create
// orders; they are reported with their collected errors while the
// surviving rows proceed independently.
func (h *ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (ImportResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		Header:    h.validator.ValidateHeaders(cmd.Headers()),
		TotalRows: len(cmd.Rows()),
	}

	validated := h.validator.ValidateRows(cmd.Rows())
	for _, row := range validated {
		switch row.Status {
		case services.RowStatusValid:
			result.ValidRows++
		case services.RowStatusWarning:
			result.WarningRows++
		case services.RowStatusInvalid:
			result.InvalidRows++
		}
	}

	result.Rows = h.createRows(ctx, validated, cmd.Policy(), cmd.ImportedBy())

	for _, row := range result.Rows {
		metrics.IncrementImportRow(string(row.Status))
		if row.OrderID != "" {
			result.Created++
		}
	}

	publishEvent(ctx, h.logger, h.publisher, events.ImportCompleted{
		TotalRows:   result.TotalRows,
		ValidRows:   result.ValidRows,
		WarningRows: result.WarningRows,
		InvalidRows: result.InvalidRows,
		Created:     result.Created,
		CompletedAt: time.Now().UTC(),
	})

	return result, nil
}

// createRows runs row creations on a bounded pool. The results slice is
// indexed, never appended to, so output order matches input order without
// further sorting.
func (h *ImportOrdersCommandHandler) createRows(ctx context.Context,
	validated []services.ValidatedRow, policy ImportPolicy, importedBy string) []ImportRowResult {
	results := make([]ImportRowResult, len(validated))

	var wg sync.WaitGroup
	sem := make(chan struct{}, h.workers)

	for i, row := range validated {
		results[i] = ImportRowResult{
			Index:    row.Index,
			Status:   row.Status,
			Errors:   row.Errors,
			Warnings: row.Warnings,
		}

		if row.Status == services.RowStatusInvalid {
			results[i].Skipped = policy.SkipInvalid
			continue
		}
		if row.Status == services.RowStatusWarning && policy.SkipWarnings {
			results[i].Skipped = true
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, row services.ValidatedRow) {
			defer wg.Done()
			defer func() { <-sem }()

			id, number, err := h.createOrder(ctx, row.Parsed, importedBy)
			if err != nil {
				results[i].Errors = append(results[i].Errors, err.Error())
				results[i].Status = services.RowStatusInvalid
				h.logger.Warn("import row failed", "row", row.Index, "error", err)
				return
			}
			results[i].OrderID = id
			results[i].OrderNumber = number
		}(i, row)
	}

	wg.Wait()
	return results
}

func (h *ImportOrdersCommandHandler) createOrder(ctx context.Context,
	parsed services.ParsedRow, importedBy string) (string, string, error) {
	milestones := []*order.Milestone{}

	origin, err := order.NewMilestone(kernel.NewUUID(), parsed.OriginName,
		parsed.OriginAddress, parsed.OriginPoint, parsed.StartDate, time.Time{})
	if err != nil {
		return "", "", err
	}
	destination, err := order.NewMilestone(kernel.NewUUID(), parsed.DestinationName,
		parsed.DestinationAddress, parsed.DestinationPoint, parsed.EndDate, time.Time{})
	if err != nil {
		return "", "", err
	}
	milestones = append(milestones, origin, destination)

	cargo := order.Cargo{
		Description:   parsed.CargoDescription,
		Type:          parsed.CargoType,
		WeightKg:      parsed.WeightKg,
		Quantity:      parsed.Quantity,
		DeclaredValue: parsed.DeclaredValue,
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), order.NewOrderNumber(time.Now().UTC()),
		parsed.CustomerID, parsed.CustomerName, cargo, parsed.Priority,
		parsed.StartDate, parsed.EndDate, milestones, importedBy)
	if err != nil {
		return "", "", err
	}
	if parsed.ExternalRef != "" {
		aggregate.SetExternalRef(parsed.ExternalRef)
	}
	if parsed.Notes != "" {
		aggregate.SetNotes(parsed.Notes)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := uow.TemplateRepository().GetAll(ctx)
	if err != nil {
		return "", "", err
	}
	if tpl, selErr := h.selector.Select(candidates, cargo.Type, parsed.CustomerID); selErr == nil {
		if err = aggregate.BindWorkflow(tpl.ID(), tpl.Name()); err != nil {
			return "", "", err
		}
	}

	aggregate.MarkSyncPending()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return "", "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", "", err
	}

	metrics.IncrementOrdersCreated(aggregate.Priority().String())
	return aggregate.ID().String(), aggregate.Number(), nil
}

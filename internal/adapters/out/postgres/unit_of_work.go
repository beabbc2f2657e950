// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work owns one database transaction and hands out repositories
// bound to it, so a command handler's repository calls either all commit
// or all roll back together.
//
// Each business operation gets its own instance from the factory; instances
// are not safe for concurrent use. Aggregates written through the
// repositories are tracked on the unit of work, which allows post-commit
// processing such as event publication.
package postgres

import (
	"context"

	"transtrack/internal/adapters/out/postgres/orderrepo"
	"transtrack/internal/adapters/out/postgres/templaterepo"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is one aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances on a shared GORM
// connection. Every Create call returns a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin again while a
// transaction is active is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction when no transaction is active, which makes
// the deferred rollback-after-commit pattern in the handlers harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the bare connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TemplateRepository returns a workflow template repository bound to the
// current transaction, or to the bare connection when none is active.
func (uow *GormUnitOfWork) TemplateRepository() ports.TemplateRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return templaterepo.NewGormTemplateRepository(db, uow)
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

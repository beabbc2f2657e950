// Package orderrepo persists order aggregates. The order header maps to
// relational columns; the milestone plan, status history, cargo and closure
// record are stored as jsonb documents on the same row, so an aggregate is
// always one row and loads without joins.
package orderrepo

import (
	"encoding/json"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for one order aggregate. The milestone json
// keys double as the read-side contract: listing queries decode the
// milestones column directly.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number         string    `gorm:"uniqueIndex"`
	Status         string    `gorm:"index"`
	Priority       string
	CustomerID     string `gorm:"index"`
	CustomerName   string
	CarrierID      *string
	VehicleID      *string
	DriverID       *string
	WorkflowID     *uuid.UUID `gorm:"type:uuid"`
	WorkflowName   string
	Cargo          []byte `gorm:"type:jsonb"`
	Milestones     []byte `gorm:"type:jsonb"`
	Completion     int
	ScheduledStart time.Time
	ScheduledEnd   *time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	History        []byte `gorm:"type:jsonb"`
	Closure        []byte `gorm:"type:jsonb"`
	SyncStatus     string `gorm:"index"`
	SyncError      string
	ExternalRef    string
	Notes          string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type cargoDTO struct {
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	WeightKg      float64 `json:"weight_kg"`
	Quantity      int     `json:"quantity"`
	DeclaredValue float64 `json:"declared_value"`
}

type manualDTO struct {
	Reason       string    `json:"reason"`
	RegisteredBy string    `json:"registered_by"`
	RegisteredAt time.Time `json:"registered_at"`
	Comment      string    `json:"comment,omitempty"`
}

type milestoneDTO struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Address            string     `json:"address"`
	Lat                *float64   `json:"lat,omitempty"`
	Lon                *float64   `json:"lon,omitempty"`
	Kind               string     `json:"kind"`
	Sequence           int        `json:"sequence"`
	Status             string     `json:"status"`
	EstimatedArrival   time.Time  `json:"estimated_arrival"`
	EstimatedDeparture *time.Time `json:"estimated_departure,omitempty"`
	ActualEntry        *time.Time `json:"actual_entry,omitempty"`
	ActualExit         *time.Time `json:"actual_exit,omitempty"`
	DelayMinutes       *int       `json:"delay_minutes,omitempty"`
	Manual             *manualDTO `json:"manual,omitempty"`
	GeofenceID         *string    `json:"geofence_id,omitempty"`
}

type statusChangeDTO struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	At     time.Time `json:"at"`
	Actor  string    `json:"actor,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

type closureDTO struct {
	Observations     string    `json:"observations,omitempty"`
	Incidents        []string  `json:"incidents,omitempty"`
	DeviationReasons []string  `json:"deviation_reasons,omitempty"`
	ClosedBy         string    `json:"closed_by"`
	ClosedAt         time.Time `json:"closed_at"`
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var workflowID *uuid.UUID
	if id := aggregate.WorkflowID(); id != nil {
		raw := id.Bytes()
		workflowID = &raw
	}

	cargoJS, err := json.Marshal(cargoDTO{
		Description:   aggregate.Cargo().Description,
		Type:          aggregate.Cargo().Type.String(),
		WeightKg:      aggregate.Cargo().WeightKg,
		Quantity:      aggregate.Cargo().Quantity,
		DeclaredValue: aggregate.Cargo().DeclaredValue,
	})
	if err != nil {
		return OrderDTO{}, err
	}

	milestones := make([]milestoneDTO, 0, len(aggregate.Milestones()))
	for _, m := range aggregate.Milestones() {
		milestones = append(milestones, milestoneFromDomain(m))
	}
	milestonesJS, err := json.Marshal(milestones)
	if err != nil {
		return OrderDTO{}, err
	}

	history := make([]statusChangeDTO, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, statusChangeDTO{
			From:   change.From.String(),
			To:     change.To.String(),
			At:     change.At,
			Actor:  change.Actor,
			Reason: change.Reason,
		})
	}
	historyJS, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	var closureJS []byte
	if record := aggregate.Closure(); record != nil {
		closureJS, err = json.Marshal(closureDTO{
			Observations:     record.Observations,
			Incidents:        record.Incidents,
			DeviationReasons: record.DeviationReasons,
			ClosedBy:         record.ClosedBy,
			ClosedAt:         record.ClosedAt,
		})
		if err != nil {
			return OrderDTO{}, err
		}
	}

	var scheduledEnd *time.Time
	if end := aggregate.ScheduledEnd(); !end.IsZero() {
		scheduledEnd = &end
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number(),
		Status:         aggregate.Status().String(),
		Priority:       aggregate.Priority().String(),
		CustomerID:     aggregate.CustomerID(),
		CustomerName:   aggregate.CustomerName(),
		CarrierID:      aggregate.CarrierID(),
		VehicleID:      aggregate.VehicleID(),
		DriverID:       aggregate.DriverID(),
		WorkflowID:     workflowID,
		WorkflowName:   aggregate.WorkflowName(),
		Cargo:          cargoJS,
		Milestones:     milestonesJS,
		Completion:     aggregate.CompletionPercent(),
		ScheduledStart: aggregate.ScheduledStart(),
		ScheduledEnd:   scheduledEnd,
		ActualStart:    aggregate.ActualStart(),
		ActualEnd:      aggregate.ActualEnd(),
		History:        historyJS,
		Closure:        closureJS,
		SyncStatus:     aggregate.SyncStatus().String(),
		SyncError:      aggregate.SyncError(),
		ExternalRef:    aggregate.ExternalRef(),
		Notes:          aggregate.Notes(),
		Version:        aggregate.Version(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}, nil
}

func milestoneFromDomain(m *order.Milestone) milestoneDTO {
	var lat, lon *float64
	if p := m.Point(); p != nil {
		la, lo := p.Latitude(), p.Longitude()
		lat, lon = &la, &lo
	}

	var estimatedDeparture *time.Time
	if dep := m.EstimatedDeparture(); !dep.IsZero() {
		estimatedDeparture = &dep
	}

	var manual *manualDTO
	if entry := m.Manual(); entry != nil {
		manual = &manualDTO{
			Reason:       string(entry.Reason),
			RegisteredBy: entry.RegisteredBy,
			RegisteredAt: entry.RegisteredAt,
			Comment:      entry.Comment,
		}
	}

	var geofenceID *string
	if id := m.GeofenceID(); id != nil {
		raw := id.String()
		geofenceID = &raw
	}

	return milestoneDTO{
		ID:                 m.ID().String(),
		Name:               m.Name(),
		Address:            m.Address(),
		Lat:                lat,
		Lon:                lon,
		Kind:               string(m.Kind()),
		Sequence:           m.Sequence(),
		Status:             m.Status().String(),
		EstimatedArrival:   m.EstimatedArrival(),
		EstimatedDeparture: estimatedDeparture,
		ActualEntry:        m.ActualEntry(),
		ActualExit:         m.ActualExit(),
		DelayMinutes:       m.DelayMinutes(),
		Manual:             manual,
		GeofenceID:         geofenceID,
	}
}

// toDomain converts a database row back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	syncStatus, err := order.SyncStatusFromString(dto.SyncStatus)
	if err != nil {
		return nil, err
	}

	var workflowID *kernel.UUID
	if dto.WorkflowID != nil {
		wID, wErr := kernel.UUIDFromBytes((*dto.WorkflowID)[:])
		if wErr != nil {
			return nil, wErr
		}
		workflowID = &wID
	}

	var cargoDoc cargoDTO
	if err = json.Unmarshal(dto.Cargo, &cargoDoc); err != nil {
		return nil, err
	}
	cargoType, err := order.ParseCargoType(cargoDoc.Type)
	if err != nil {
		return nil, err
	}

	var milestoneDocs []milestoneDTO
	if err = json.Unmarshal(dto.Milestones, &milestoneDocs); err != nil {
		return nil, err
	}
	milestones := make([]*order.Milestone, 0, len(milestoneDocs))
	for _, doc := range milestoneDocs {
		m, mErr := milestoneToDomain(doc)
		if mErr != nil {
			return nil, mErr
		}
		milestones = append(milestones, m)
	}

	history := make([]order.StatusChange, 0)
	if len(dto.History) > 0 {
		var historyDocs []statusChangeDTO
		if err = json.Unmarshal(dto.History, &historyDocs); err != nil {
			return nil, err
		}
		for _, doc := range historyDocs {
			from, hErr := order.StatusFromString(doc.From)
			if hErr != nil {
				return nil, hErr
			}
			to, hErr := order.StatusFromString(doc.To)
			if hErr != nil {
				return nil, hErr
			}
			history = append(history, order.StatusChange{
				From:   from,
				To:     to,
				At:     doc.At,
				Actor:  doc.Actor,
				Reason: doc.Reason,
			})
		}
	}

	var closure *order.ClosureRecord
	if len(dto.Closure) > 0 {
		var closureDoc closureDTO
		if err = json.Unmarshal(dto.Closure, &closureDoc); err != nil {
			return nil, err
		}
		closure = &order.ClosureRecord{
			Observations:     closureDoc.Observations,
			Incidents:        closureDoc.Incidents,
			DeviationReasons: closureDoc.DeviationReasons,
			ClosedBy:         closureDoc.ClosedBy,
			ClosedAt:         closureDoc.ClosedAt,
		}
	}

	var scheduledEnd time.Time
	if dto.ScheduledEnd != nil {
		scheduledEnd = *dto.ScheduledEnd
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		Number:       dto.Number,
		Status:       status,
		Priority:     priority,
		CustomerID:   dto.CustomerID,
		CustomerName: dto.CustomerName,
		CarrierID:    dto.CarrierID,
		VehicleID:    dto.VehicleID,
		DriverID:     dto.DriverID,
		WorkflowID:   workflowID,
		WorkflowName: dto.WorkflowName,
		Cargo: order.Cargo{
			Description:   cargoDoc.Description,
			Type:          cargoType,
			WeightKg:      cargoDoc.WeightKg,
			Quantity:      cargoDoc.Quantity,
			DeclaredValue: cargoDoc.DeclaredValue,
		},
		Milestones:     milestones,
		ScheduledStart: dto.ScheduledStart,
		ScheduledEnd:   scheduledEnd,
		ActualStart:    dto.ActualStart,
		ActualEnd:      dto.ActualEnd,
		History:        history,
		Closure:        closure,
		SyncStatus:     syncStatus,
		SyncError:      dto.SyncError,
		ExternalRef:    dto.ExternalRef,
		Notes:          dto.Notes,
		Version:        dto.Version,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	}), nil
}

func milestoneToDomain(doc milestoneDTO) (*order.Milestone, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.MilestoneStatusFromString(doc.Status)
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if doc.Lat != nil && doc.Lon != nil {
		p, pErr := kernel.NewGeoPoint(*doc.Lat, *doc.Lon)
		if pErr != nil {
			return nil, pErr
		}
		point = &p
	}

	var estimatedDeparture time.Time
	if doc.EstimatedDeparture != nil {
		estimatedDeparture = *doc.EstimatedDeparture
	}

	var manual *order.ManualEntry
	if doc.Manual != nil {
		manual = &order.ManualEntry{
			Reason:       order.ManualReason(doc.Manual.Reason),
			RegisteredBy: doc.Manual.RegisteredBy,
			RegisteredAt: doc.Manual.RegisteredAt,
			Comment:      doc.Manual.Comment,
		}
	}

	var geofenceID *kernel.UUID
	if doc.GeofenceID != nil {
		gID, gErr := kernel.UUIDFromString(*doc.GeofenceID)
		if gErr != nil {
			return nil, gErr
		}
		geofenceID = &gID
	}

	return order.RestoreMilestone(order.RestoreMilestoneParams{
		ID:                 id,
		Name:               doc.Name,
		Address:            doc.Address,
		Point:              point,
		Kind:               order.MilestoneKind(doc.Kind),
		Sequence:           doc.Sequence,
		EstimatedArrival:   doc.EstimatedArrival,
		EstimatedDeparture: estimatedDeparture,
		ActualEntry:        doc.ActualEntry,
		ActualExit:         doc.ActualExit,
		Status:             status,
		DelayMinutes:       doc.DelayMinutes,
		Manual:             manual,
		GeofenceID:         geofenceID,
	}), nil
}

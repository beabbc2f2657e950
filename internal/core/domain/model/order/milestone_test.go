package order_test

import (
	"testing"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMilestone(t *testing.T, name string, arrival time.Time) *order.Milestone {
	t.Helper()

	point, err := kernel.NewGeoPoint(40.4168, -3.7038)
	require.NoError(t, err)

	m, err := order.NewMilestone(kernel.NewUUID(), name, "Calle Mayor 1, Madrid", &point,
		arrival, arrival.Add(30*time.Minute))
	require.NoError(t, err)
	return m
}

func TestNewMilestone(t *testing.T) {
	arrival := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should create pending milestone", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)

		assert.Equal(t, order.MilestoneStatusPending, m.Status())
		assert.Nil(t, m.ActualEntry())
		assert.Nil(t, m.DelayMinutes())
		require.NoError(t, m.Validate())
	})

	t.Run("should accept nil point", func(t *testing.T) {
		_, err := order.NewMilestone(kernel.NewUUID(), "Unresolved stop", "", nil,
			arrival, time.Time{})

		require.NoError(t, err)
	})

	t.Run("should fail without name", func(t *testing.T) {
		_, err := order.NewMilestone(kernel.NewUUID(), "", "", nil, arrival, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail without estimated arrival", func(t *testing.T) {
		_, err := order.NewMilestone(kernel.NewUUID(), "Madrid DC", "", nil,
			time.Time{}, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail when departure precedes arrival", func(t *testing.T) {
		_, err := order.NewMilestone(kernel.NewUUID(), "Madrid DC", "", nil,
			arrival, arrival.Add(-time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var m order.Milestone

		require.Error(t, m.Validate())
	})
}

func TestMilestone_EnterExit(t *testing.T) {
	arrival := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should record entry and compute delay", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)

		err := m.Enter(arrival.Add(25 * time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.MilestoneStatusInProgress, m.Status())
		require.NotNil(t, m.DelayMinutes())
		assert.Equal(t, 25, *m.DelayMinutes())
	})

	t.Run("should record negative delay for early arrival", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)

		require.NoError(t, m.Enter(arrival.Add(-10*time.Minute)))

		require.NotNil(t, m.DelayMinutes())
		assert.Equal(t, -10, *m.DelayMinutes())
	})

	t.Run("should complete on exit", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		require.NoError(t, m.Enter(arrival))

		err := m.Exit(arrival.Add(20 * time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.MilestoneStatusCompleted, m.Status())
		assert.True(t, m.IsFinished())
	})

	t.Run("should reject exit without entry", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)

		err := m.Exit(arrival)

		require.ErrorIs(t, err, errs.ErrInvalidOperation)
	})

	t.Run("should reject exit before entry", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		require.NoError(t, m.Enter(arrival))

		err := m.Exit(arrival.Add(-time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject double entry", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		require.NoError(t, m.Enter(arrival))

		err := m.Enter(arrival.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should complete a delayed milestone on exit", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		require.NoError(t, m.Enter(arrival))
		require.NoError(t, m.MarkDelayed())

		err := m.Exit(arrival.Add(2 * time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.MilestoneStatusCompleted, m.Status())
	})
}

func TestMilestone_ManualPassage(t *testing.T) {
	arrival := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	entry := arrival.Add(5 * time.Minute)
	exit := arrival.Add(40 * time.Minute)

	t.Run("should register entry and exit in one step", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)

		err := m.RegisterManualPassage(&entry, &exit, order.ManualEntry{
			Reason:       order.ManualReasonNoGPSSignal,
			RegisteredBy: "operator-7",
			RegisteredAt: exit,
		})

		require.NoError(t, err)
		assert.Equal(t, order.MilestoneStatusCompleted, m.Status())
		require.NotNil(t, m.Manual())
		assert.Equal(t, order.ManualReasonNoGPSSignal, m.Manual().Reason)
	})

	t.Run("should register entry only", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)

		err := m.RegisterManualPassage(&entry, nil, order.ManualEntry{
			Reason:       order.ManualReasonEquipmentFailure,
			RegisteredBy: "operator-7",
		})

		require.NoError(t, err)
		assert.Equal(t, order.MilestoneStatusInProgress, m.Status())
	})

	t.Run("should reject unknown reason", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)

		err := m.RegisterManualPassage(&entry, nil, order.ManualEntry{
			Reason:       order.ManualReason("because"),
			RegisteredBy: "operator-7",
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require registeredBy", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)

		err := m.RegisterManualPassage(&entry, nil, order.ManualEntry{
			Reason: order.ManualReasonCorrection,
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require at least one timestamp", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)

		err := m.RegisterManualPassage(nil, nil, order.ManualEntry{
			Reason:       order.ManualReasonOther,
			RegisteredBy: "operator-7",
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should follow the same transition rules as automatic events", func(t *testing.T) {
		m := testMilestone(t, "Zaragoza hub", arrival)
		require.NoError(t, m.Enter(entry))
		require.NoError(t, m.Exit(exit))

		err := m.RegisterManualPassage(&entry, &exit, order.ManualEntry{
			Reason:       order.ManualReasonCorrection,
			RegisteredBy: "operator-7",
		})

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestMilestone_SkipAndDelay(t *testing.T) {
	arrival := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should skip pending milestone", func(t *testing.T) {
		m := testMilestone(t, "Optional stop", arrival)

		require.NoError(t, m.Skip())
		assert.Equal(t, order.MilestoneStatusSkipped, m.Status())
		assert.True(t, m.IsFinished())
	})

	t.Run("should not skip milestone already reached", func(t *testing.T) {
		m := testMilestone(t, "Optional stop", arrival)
		require.NoError(t, m.Enter(arrival))

		require.ErrorIs(t, m.Skip(), errs.ErrInvalidTransition)
	})

	t.Run("should mark approaching then delayed", func(t *testing.T) {
		m := testMilestone(t, "Optional stop", arrival)

		require.NoError(t, m.MarkApproaching())
		assert.Equal(t, order.MilestoneStatusApproaching, m.Status())

		require.NoError(t, m.MarkDelayed())
		assert.Equal(t, order.MilestoneStatusDelayed, m.Status())
	})

	t.Run("should allow entry after delay", func(t *testing.T) {
		m := testMilestone(t, "Optional stop", arrival)
		require.NoError(t, m.MarkApproaching())
		require.NoError(t, m.MarkDelayed())

		require.NoError(t, m.Enter(arrival.Add(3*time.Hour)))
		assert.Equal(t, order.MilestoneStatusInProgress, m.Status())
	})

	t.Run("should not delay a pending milestone", func(t *testing.T) {
		m := testMilestone(t, "Optional stop", arrival)

		require.ErrorIs(t, m.MarkDelayed(), errs.ErrInvalidTransition)
	})
}

func TestMilestone_Reschedule(t *testing.T) {
	arrival := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should replace the estimated window", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		later := arrival.Add(2 * time.Hour)

		require.NoError(t, m.Reschedule(later, later.Add(time.Hour)))
		assert.Equal(t, later, m.EstimatedArrival())
	})

	t.Run("should reject reschedule of finished milestone", func(t *testing.T) {
		m := testMilestone(t, "Madrid DC", arrival)
		require.NoError(t, m.Skip())

		err := m.Reschedule(arrival.Add(time.Hour), time.Time{})

		require.ErrorIs(t, err, errs.ErrInvalidOperation)
	})
}

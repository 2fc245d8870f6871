package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkiviaho/trainerdesk/internal/domain"
)

// =============================================================================
// Mock TrainingAPI Implementation
// =============================================================================

type mockTrainingAPI struct {
	ListTrainingsFunc  func(ctx context.Context) ([]domain.Training, error)
	ListCustomersFunc  func(ctx context.Context) ([]domain.Customer, error)
	CreateTrainingFunc func(ctx context.Context, draft domain.TrainingDraft) error
	DeleteTrainingFunc func(ctx context.Context, id int64) error
}

func (m *mockTrainingAPI) ListTrainings(ctx context.Context) ([]domain.Training, error) {
	if m.ListTrainingsFunc != nil {
		return m.ListTrainingsFunc(ctx)
	}
	return nil, errors.New("ListTrainingsFunc not implemented")
}

func (m *mockTrainingAPI) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	if m.ListCustomersFunc != nil {
		return m.ListCustomersFunc(ctx)
	}
	return nil, errors.New("ListCustomersFunc not implemented")
}

func (m *mockTrainingAPI) CreateTraining(ctx context.Context, draft domain.TrainingDraft) error {
	if m.CreateTrainingFunc != nil {
		return m.CreateTrainingFunc(ctx, draft)
	}
	return errors.New("CreateTrainingFunc not implemented")
}

func (m *mockTrainingAPI) DeleteTraining(ctx context.Context, id int64) error {
	if m.DeleteTrainingFunc != nil {
		return m.DeleteTrainingFunc(ctx, id)
	}
	return errors.New("DeleteTrainingFunc not implemented")
}

func staticTrainings(trainings ...domain.Training) func(context.Context) ([]domain.Training, error) {
	return func(context.Context) ([]domain.Training, error) {
		return trainings, nil
	}
}

func testTrainings() []domain.Training {
	return []domain.Training{
		{
			ID:       1,
			Date:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			Duration: 90,
			Activity: "Spinning",
			Customer: domain.Customer{Firstname: "Zed", Lastname: "Abel"},
		},
		{
			ID:       2,
			Date:     time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
			Duration: 30,
			Activity: "Yoga",
			Customer: domain.Customer{Firstname: "Amy", Lastname: "Berg"},
		},
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestTrainingConsoleLoadSortsByDate(t *testing.T) {
	api := &mockTrainingAPI{ListTrainingsFunc: staticTrainings(testTrainings()...)}
	c := NewTrainingConsole(api, discardLogger())

	require.NoError(t, c.Load(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Trainings, 2)
	// Default sort is date ascending
	assert.Equal(t, int64(2), snap.Trainings[0].ID)
	assert.Equal(t, int64(1), snap.Trainings[1].ID)
}

func TestTrainingConsoleSortByCustomerName(t *testing.T) {
	api := &mockTrainingAPI{ListTrainingsFunc: staticTrainings(testTrainings()...)}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.Sort("customer")

	snap := c.Snapshot()
	// "Amy Berg" sorts before "Zed Abel" on the joined full name
	assert.Equal(t, "Amy Berg", snap.Trainings[0].CustomerName())
	assert.Equal(t, "Zed Abel", snap.Trainings[1].CustomerName())
}

func TestTrainingConsoleSortByDuration(t *testing.T) {
	api := &mockTrainingAPI{ListTrainingsFunc: staticTrainings(testTrainings()...)}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.Sort("duration")
	snap := c.Snapshot()
	assert.Equal(t, 30, snap.Trainings[0].Duration)

	c.Sort("duration")
	snap = c.Snapshot()
	assert.Equal(t, 90, snap.Trainings[0].Duration)
}

func TestTrainingConsoleSearchMatchesCustomerFields(t *testing.T) {
	api := &mockTrainingAPI{ListTrainingsFunc: staticTrainings(testTrainings()...)}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	// Term only occurs in the embedded customer record
	c.Search("berg")

	snap := c.Snapshot()
	require.Len(t, snap.Trainings, 1)
	assert.Equal(t, "Yoga", snap.Trainings[0].Activity)
	assert.Equal(t, 2, snap.Total)
}

func TestTrainingConsoleLoadCustomersPopulatesOptions(t *testing.T) {
	api := &mockTrainingAPI{
		ListTrainingsFunc: staticTrainings(),
		ListCustomersFunc: staticCustomers(
			domain.Customer{Firstname: "Ann", SelfLink: "http://x/customers/1"},
		),
	}
	c := NewTrainingConsole(api, discardLogger())

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.LoadCustomers(context.Background()))

	snap := c.Snapshot()
	require.Len(t, snap.Options, 1)
	assert.Equal(t, "Ann", snap.Options[0].Firstname)
}

func TestTrainingConsoleCreateFlow(t *testing.T) {
	var created []domain.TrainingDraft
	api := &mockTrainingAPI{
		ListTrainingsFunc: staticTrainings(),
		CreateTrainingFunc: func(_ context.Context, draft domain.TrainingDraft) error {
			created = append(created, draft)
			return nil
		},
	}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.OpenNew()
	c.EditField("date", "2026-08-30T10:00")
	c.EditField("duration", "60")
	c.EditField("activity", "Spinning")
	c.EditField("customer", "7")

	require.NoError(t, c.Submit(context.Background()))

	require.Len(t, created, 1)
	assert.Equal(t, "7", created[0].Customer, "draft carries the bare customer identifier")
	assert.Equal(t, "Spinning", created[0].Activity)
	assert.Equal(t, FormClosed, c.Snapshot().FormState)
}

func TestTrainingConsoleCreateFailureKeepsDraftOpen(t *testing.T) {
	api := &mockTrainingAPI{
		ListTrainingsFunc: staticTrainings(),
		CreateTrainingFunc: func(context.Context, domain.TrainingDraft) error {
			return domain.MutationFailed("trainings.create", 500, nil)
		},
	}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.OpenNew()
	c.EditField("activity", "Spinning")

	err := c.Submit(context.Background())
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, FormCreating, snap.FormState)
	assert.Equal(t, "Spinning", snap.Draft.Activity)
}

func TestTrainingConsoleDeleteDeclined(t *testing.T) {
	deleteCalls := 0
	api := &mockTrainingAPI{
		ListTrainingsFunc: staticTrainings(testTrainings()...),
		DeleteTrainingFunc: func(context.Context, int64) error {
			deleteCalls++
			return nil
		},
	}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.RequestDelete(1)
	assert.Equal(t, int64(1), c.Snapshot().PendingDelete)

	c.DeclineDelete()
	require.NoError(t, c.ConfirmDelete(context.Background()))

	assert.Zero(t, deleteCalls, "no DELETE request after declining")
	assert.Len(t, c.Snapshot().Trainings, 2)
}

func TestTrainingConsoleDeleteConfirmed(t *testing.T) {
	var deleted []int64
	api := &mockTrainingAPI{
		ListTrainingsFunc: staticTrainings(testTrainings()...),
		DeleteTrainingFunc: func(_ context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	c := NewTrainingConsole(api, discardLogger())
	require.NoError(t, c.Load(context.Background()))

	c.RequestDelete(2)
	require.NoError(t, c.ConfirmDelete(context.Background()))

	assert.Equal(t, []int64{2}, deleted)
	assert.Zero(t, c.Snapshot().PendingDelete)
}

func TestTrainingConsoleLoadFailureKeepsPreviousState(t *testing.T) {
	calls := 0
	api := &mockTrainingAPI{
		ListTrainingsFunc: func(context.Context) ([]domain.Training, error) {
			calls++
			if calls > 1 {
				return nil, domain.FetchFailed("trainings.list", 502, nil)
			}
			return testTrainings(), nil
		},
	}
	c := NewTrainingConsole(api, discardLogger())

	require.NoError(t, c.Load(context.Background()))
	require.Error(t, c.Load(context.Background()))

	assert.Len(t, c.Snapshot().Trainings, 2)
}

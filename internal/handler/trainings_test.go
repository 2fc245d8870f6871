package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkiviaho/trainerdesk/internal/console"
	"github.com/rkiviaho/trainerdesk/internal/domain"
)

type stubTrainingAPI struct {
	trainings []domain.Training
	customers []domain.Customer
	created   []domain.TrainingDraft
	deleted   []int64
}

func (s *stubTrainingAPI) ListTrainings(context.Context) ([]domain.Training, error) {
	return s.trainings, nil
}

func (s *stubTrainingAPI) ListCustomers(context.Context) ([]domain.Customer, error) {
	return s.customers, nil
}

func (s *stubTrainingAPI) CreateTraining(_ context.Context, draft domain.TrainingDraft) error {
	s.created = append(s.created, draft)
	return nil
}

func (s *stubTrainingAPI) DeleteTraining(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTrainingTestServer(t *testing.T, api *stubTrainingAPI) *http.ServeMux {
	t.Helper()
	logger := testLogger()
	h := NewTrainingHandler(console.NewTrainingConsole(api, logger), testRenderer(t), logger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestTrainingPageRenders(t *testing.T) {
	api := &stubTrainingAPI{
		trainings: []domain.Training{{
			ID:       11,
			Date:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			Duration: 60,
			Activity: "Spinning",
			Customer: domain.Customer{Firstname: "Ann", Lastname: "Archer"},
		}},
		customers: []domain.Customer{{Firstname: "Ann", Lastname: "Archer", SelfLink: "http://x/customers/1"}},
	}
	mux := newTrainingTestServer(t, api)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trainings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Spinning")
	assert.Contains(t, body, "30.08.2026 10:00")
	assert.Contains(t, body, "Ann Archer")
}

func TestTrainingSaveCreates(t *testing.T) {
	api := &stubTrainingAPI{}
	mux := newTrainingTestServer(t, api)

	mux.ServeHTTP(httptest.NewRecorder(), postForm("/trainings/new", nil))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/trainings/save", url.Values{
		"date":     {"2026-08-30T10:00"},
		"duration": {"60"},
		"activity": {"Spinning"},
		"customer": {"7"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/trainings", rec.Header().Get("Location"))

	require.Len(t, api.created, 1)
	assert.Equal(t, "7", api.created[0].Customer)
	assert.Equal(t, "60", api.created[0].Duration)
}

func TestTrainingSortRejectsUnknownKey(t *testing.T) {
	mux := newTrainingTestServer(t, &stubTrainingAPI{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/trainings/sort", url.Values{"key": {"bogus"}}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrainingRequestDeleteRejectsBadID(t *testing.T) {
	mux := newTrainingTestServer(t, &stubTrainingAPI{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm("/trainings/delete", url.Values{"id": {"not-a-number"}}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrainingDeleteFlow(t *testing.T) {
	api := &stubTrainingAPI{
		trainings: []domain.Training{{
			ID:       11,
			Date:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			Activity: "Spinning",
			Customer: domain.Customer{Firstname: "Ann"},
		}},
	}
	mux := newTrainingTestServer(t, api)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trainings", nil))
	mux.ServeHTTP(httptest.NewRecorder(), postForm("/trainings/delete", url.Values{"id": {"11"}}))
	mux.ServeHTTP(httptest.NewRecorder(), postForm("/trainings/delete/confirm", nil))

	assert.Equal(t, []int64{11}, api.deleted)
}

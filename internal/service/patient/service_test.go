package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository/memory"
	"github.com/ordinacija/patients-api/internal/viewmodel"
)

func anaKovac() viewmodel.PatientView {
	return viewmodel.PatientView{
		FirstName: "Ana",
		LastName:  "Kovač",
		Oib:       "12345678901",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddPatient(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	res := svc.Add(ctx, anaKovac())
	assert.True(t, res.IsSuccess())

	// Same Oib again must be rejected as already registered.
	again := anaKovac()
	again.FirstName = "Another"
	res = svc.Add(ctx, again)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, "Patient is already registered in the system!", res.Error())
}

func TestAddPatientInvalid(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	p := anaKovac()
	p.Birthday = time.Now().Add(24 * time.Hour)

	res := svc.Add(context.Background(), p)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, "Patient details aren't valid!", res.Error())

	// Nothing was persisted.
	views, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetEagerLoads(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	require.True(t, svc.Add(ctx, anaKovac()).IsSuccess())
	views, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	id := views[0].ID

	require.NoError(t, store.Prescriptions().Create(ctx, &model.Prescription{
		PatientID:      id,
		MedicationName: "Andol",
		DatePrescribed: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Visits().Create(ctx, &model.Visit{
		PatientID:    id,
		Type:         model.VisitTypeBloodWork,
		Date:         time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		DoctorsNotes: "ok",
	}))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Prescriptions, 1)
	assert.Len(t, got.Visits, 1)
}

func TestGetNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	_, err := svc.Get(context.Background(), 404)
	assert.Error(t, err)
}

func TestGetByOib(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	require.True(t, svc.Add(ctx, anaKovac()).IsSuccess())

	got, err := svc.GetByOib(ctx, "12345678901")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.FirstName)

	// Absent is a valid outcome, not a failure.
	got, err = svc.GetByOib(ctx, "99999999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateFullReplace(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	require.True(t, svc.Add(ctx, anaKovac()).IsSuccess())
	views, err := svc.List(ctx, "")
	require.NoError(t, err)
	updated := views[0]
	updated.FirstName = "Ivana"
	updated.IsMale = false
	updated.Birthday = time.Date(1991, 2, 2, 0, 0, 0, 0, time.UTC)

	res := svc.Update(ctx, updated)
	require.True(t, res.IsSuccess())

	got, err := svc.Get(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivana", got.FirstName)
	assert.Equal(t, updated.Birthday, got.Birthday)
}

func TestUpdateNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	missing := anaKovac()
	missing.ID = 404

	res := svc.Update(context.Background(), missing)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, "Patient not found!", res.Error())
}

func TestDeleteCascades(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	require.True(t, svc.Add(ctx, anaKovac()).IsSuccess())
	views, err := svc.List(ctx, "")
	require.NoError(t, err)
	id := views[0].ID

	require.NoError(t, store.Prescriptions().Create(ctx, &model.Prescription{PatientID: id, MedicationName: "Andol"}))
	visit := &model.Visit{PatientID: id, Type: model.VisitTypeXRay, DoctorsNotes: "ok"}
	require.NoError(t, store.Visits().Create(ctx, visit))
	require.NoError(t, store.Images().Create(ctx, &model.Image{VisitID: visit.ID, FileExt: ".png"}))

	res := svc.Delete(ctx, id)
	require.True(t, res.IsSuccess())

	prescriptions, err := store.Prescriptions().ListByPatient(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, prescriptions)

	visits, err := store.Visits().ListByPatient(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, visits)

	images, err := store.Images().ListByVisit(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, images, "image metadata of cascaded visits must be gone")
}

func TestDeleteNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())

	res := svc.Delete(context.Background(), 404)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, "Patient not found!", res.Error())
}

func TestListFilter(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Patients())
	ctx := context.Background()

	require.True(t, svc.Add(ctx, anaKovac()).IsSuccess())
	other := viewmodel.PatientView{
		FirstName: "Marko",
		LastName:  "Horvat",
		IsMale:    true,
		Oib:       "98765432109",
		Birthday:  time.Date(1985, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	require.True(t, svc.Add(ctx, other).IsSuccess())

	// Case-insensitive substring across first name, last name and Oib.
	views, err := svc.List(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Ana", views[0].FirstName)

	views, err = svc.List(ctx, "HORV")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Marko", views[0].FirstName)

	views, err = svc.List(ctx, "98765")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "98765432109", views[0].Oib)

	views, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, views)
}

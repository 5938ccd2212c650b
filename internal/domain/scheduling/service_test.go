package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockAppointmentRepo struct {
	appointments map[uuid.UUID]*Appointment
	batchCalls   int
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appointments[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	m.appointments[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(m.appointments, id)
	return nil
}

func (m *mockAppointmentRepo) List(_ context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		if v := params["patient_id"]; v != "" && a.PatientID.String() != v {
			continue
		}
		if v := params["doctor_id"]; v != "" && a.DoctorID.String() != v {
			continue
		}
		if v := params["date"]; v != "" && a.Date != v {
			continue
		}
		result = append(result, a)
	}
	return result, len(result), nil
}

func (m *mockAppointmentRepo) HasAny(_ context.Context, patientID uuid.UUID) (bool, error) {
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAppointmentRepo) PatientsWith(_ context.Context, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	m.batchCalls++
	wanted := make(map[uuid.UUID]bool, len(patientIDs))
	for _, id := range patientIDs {
		wanted[id] = true
	}
	result := make(map[uuid.UUID]bool)
	for _, a := range m.appointments {
		if wanted[a.PatientID] {
			result[a.PatientID] = true
		}
	}
	return result, nil
}

func newTestService() *Service {
	return NewService(newMockAppointmentRepo())
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Type:      "consulta",
		Date:      "2024-03-15",
		Time:      "14:30",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateAppointment_RequiredFields(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		name   string
		mutate func(a *Appointment)
		want   string
	}{
		{"patient", func(a *Appointment) { a.PatientID = uuid.Nil }, "patient_id is required"},
		{"doctor", func(a *Appointment) { a.DoctorID = uuid.Nil }, "doctor_id is required"},
		{"type", func(a *Appointment) { a.Type = "  " }, "type is required"},
		{"date", func(a *Appointment) { a.Date = "" }, "date is required"},
		{"date format", func(a *Appointment) { a.Date = "15/03/2024" }, "date must be YYYY-MM-DD"},
		{"time", func(a *Appointment) { a.Time = "" }, "time is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)
			err := svc.CreateAppointment(context.Background(), a)
			if err == nil || err.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateAppointment_TimeNotParsed(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.Time = "fim da tarde"
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Errorf("time should only need presence, got %v", err)
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.ID = uuid.New()
	if err := svc.UpdateAppointment(context.Background(), a); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)
	if err := svc.DeleteAppointment(context.Background(), a.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if _, err := svc.GetAppointment(context.Background(), a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAppointments_InvalidFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, _, err := svc.ListAppointments(ctx, map[string]string{"patient_id": "x"}, 20, 0); err == nil {
		t.Error("expected error for invalid patient_id")
	}
	if _, _, err := svc.ListAppointments(ctx, map[string]string{"date": "yesterday"}, 20, 0); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestListAppointments_FilterByPatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a := validAppointment()
	b := validAppointment()
	svc.CreateAppointment(ctx, a)
	svc.CreateAppointment(ctx, b)

	got, total, err := svc.ListAppointments(ctx, map[string]string{"patient_id": a.PatientID.String()}, 20, 0)
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if total != 1 || got[0].ID != a.ID {
		t.Errorf("expected only appointment a, got %d results", total)
	}
}

func TestHasAppointment_PastCounts(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.Date = "1999-01-01"
	svc.CreateAppointment(context.Background(), a)

	has, err := svc.HasAppointment(context.Background(), a.PatientID)
	if err != nil {
		t.Fatalf("HasAppointment: %v", err)
	}
	if !has {
		t.Error("expected a past appointment to count")
	}

	has, _ = svc.HasAppointment(context.Background(), uuid.New())
	if has {
		t.Error("expected no appointment for unknown patient")
	}
}

func TestPatientsWithAppointments_SingleBatch(t *testing.T) {
	repo := newMockAppointmentRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := validAppointment()
	svc.CreateAppointment(ctx, a)
	second := validAppointment()
	second.PatientID = a.PatientID
	svc.CreateAppointment(ctx, second)
	without := uuid.New()

	got, err := svc.PatientsWithAppointments(ctx, []uuid.UUID{a.PatientID, without})
	if err != nil {
		t.Fatalf("PatientsWithAppointments: %v", err)
	}
	if !got[a.PatientID] || got[without] {
		t.Errorf("unexpected result %v", got)
	}
	if repo.batchCalls != 1 {
		t.Errorf("expected 1 batch call, got %d", repo.batchCalls)
	}
}

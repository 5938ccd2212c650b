package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// -- Patient --

func validatePatient(p *Patient) error {
	p.Normalize()
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// UpdatePatient replaces every editable field of the stored patient.
func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	if v := params["payments_current"]; v != "" {
		if _, err := strconv.ParseBool(v); err != nil {
			return nil, 0, fmt.Errorf("payments_current must be true or false")
		}
	}
	return s.patients.Search(ctx, params, limit, offset)
}

func (s *Service) SetPaymentsCurrent(ctx context.Context, id uuid.UUID, current bool) error {
	return s.patients.SetPaymentsCurrent(ctx, id, current)
}

// -- Doctor --

func validateDoctor(d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	if d.License == "" {
		return fmt.Errorf("license is required")
	}
	return nil
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := validateDoctor(d); err != nil {
		return err
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validateDoctor(d); err != nil {
		return err
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListAvailableDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListAvailable(ctx, limit, offset)
}

func (s *Service) CountAvailableDoctors(ctx context.Context) (int, error) {
	return s.doctors.CountAvailable(ctx)
}

func (s *Service) SetDoctorAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return s.doctors.SetAvailability(ctx, id, available)
}

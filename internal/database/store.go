package database

import (
	"context"
	"errors"
	"fmt"

	"clinic-assistant/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StorageError is returned for every failed read or write against the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("database: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Store is the repository over the four clinical tables. Each method is a
// single statement; nothing spans a transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	if p.Metadata == nil {
		p.Metadata = datatypes.JSONMap{}
	}
	return storageErr("create patient", s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) PatientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storageErr("count patients", err)
	}
	return count > 0, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return storageErr("create appointment", s.db.WithContext(ctx).Create(a).Error)
}

func (s *Store) CreatePrescription(ctx context.Context, rx *models.Prescription) error {
	return storageErr("create prescription", s.db.WithContext(ctx).Create(rx).Error)
}

// LatestPrescription returns the most recently created prescription for the
// patient, or nil when there is none. Ties on created_at go to the higher id.
func (s *Store) LatestPrescription(ctx context.Context, patientID uint) (*models.Prescription, error) {
	var rx models.Prescription
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Order("id desc").
		First(&rx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("latest prescription", err)
	}
	return &rx, nil
}

// AppendTurns inserts the turns in order with a single statement.
func (s *Store) AppendTurns(ctx context.Context, turns ...models.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	return storageErr("append turns", s.db.WithContext(ctx).Create(&turns).Error)
}

// TurnsForPatient returns the patient's turns oldest first.
func (s *Store) TurnsForPatient(ctx context.Context, patientID uint) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at asc").
		Order("id asc").
		Find(&turns).Error
	if err != nil {
		return nil, storageErr("list turns", err)
	}
	return turns, nil
}

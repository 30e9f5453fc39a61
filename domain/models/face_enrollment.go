package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// FaceDescriptorDimensions is the length of one face descriptor produced by the kiosk model.
const FaceDescriptorDimensions = 128

type EnrollmentStatus string

const (
	EnrollmentStatusActive  EnrollmentStatus = "active"
	EnrollmentStatusRevoked EnrollmentStatus = "revoked"
)

// FaceEnrollment is the biometric template of one subject. At most one is active per subject.
type FaceEnrollment struct {
	ID       uuid.UUID  `gorm:"primaryKey;type:uuid"`
	BarberID *uuid.UUID `gorm:"type:uuid;index"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	BranchID uuid.UUID  `gorm:"type:uuid;not null;index"`

	PhotoStorageIDs []string         `gorm:"type:jsonb;serializer:json"`
	Status          EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;index"`

	ConsentGiven     bool `gorm:"not null"`
	ConsentTimestamp time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Embeddings []FaceEmbedding `gorm:"foreignKey:EnrollmentID"`
}

func (FaceEnrollment) TableName() string {
	return "face_enrollments"
}

func (e *FaceEnrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *FaceEnrollment) Subject() Subject {
	if e.BarberID != nil {
		return BarberSubject(*e.BarberID)
	}
	if e.UserID != nil {
		return StaffSubject(*e.UserID)
	}
	return Subject{}
}

func (e *FaceEnrollment) SetSubject(subject Subject) {
	e.BarberID = subject.BarberID()
	e.UserID = subject.UserID()
}

// Descriptors returns the embeddings as plain float slices in capture order.
func (e *FaceEnrollment) Descriptors() [][]float32 {
	out := make([][]float32, len(e.Embeddings))
	for i, emb := range e.Embeddings {
		out[i] = emb.Embedding.Slice()
	}
	return out
}

// FaceEmbedding is one captured descriptor of an enrollment.
type FaceEmbedding struct {
	ID           uuid.UUID       `gorm:"primaryKey;type:uuid"`
	EnrollmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"` // capture order
	Embedding    pgvector.Vector `gorm:"type:vector(128);not null"`
	CreatedAt    time.Time
}

func (FaceEmbedding) TableName() string {
	return "face_enrollment_embeddings"
}

func (e *FaceEmbedding) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewFaceEmbeddings wraps raw descriptors for storage.
func NewFaceEmbeddings(descriptors [][]float32) []FaceEmbedding {
	out := make([]FaceEmbedding, len(descriptors))
	for i, d := range descriptors {
		out[i] = FaceEmbedding{
			Position:  i,
			Embedding: pgvector.NewVector(d),
		}
	}
	return out
}

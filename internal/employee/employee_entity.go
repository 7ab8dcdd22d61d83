package employee

import (
	"time"

	"github.com/google/uuid"
)

const StatusActive = "active"

// Employee adalah read model atas tabel employees milik layanan HR.
// Modul ini tidak pernah menulis ke tabel tersebut.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	FullName     string     `gorm:"type:varchar(120)"`
	Email        string     `gorm:"type:varchar(120)"`
	Status       string     `gorm:"type:varchar(20)"`
	JoinDate     time.Time  `gorm:"type:date"`
}

func (Employee) TableName() string {
	return "employees"
}

package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	Account    AccountRepository
	Schedule   ScheduleRepository
	Area       AreaRepository
	Department DepartmentRepository
}

// NewRepository builds the aggregate over one GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Account:    NewAccountRepo(db),
		Schedule:   NewScheduleRepo(db),
		Area:       NewAreaRepo(db),
		Department: NewDepartmentRepo(db),
	}
}

package model

// Department is an organizational unit. Schedule entries reference it
// by name, denormalized, so a rename never rewrites existing entries.
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName sets the table name.
func (Department) TableName() string { return "departments" }

package model

// AccountStatus is the account lifecycle state.
type AccountStatus string

const (
	AccountPending AccountStatus = "pending"
	AccountActive  AccountStatus = "active"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	return s == AccountPending || s == AccountActive
}

// Account is a user of the system. Email uniquely identifies an
// account; a pending account cannot authenticate.
type Account struct {
	AccountID     string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Email         string        `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Name          string        `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash  string        `gorm:"type:varchar(255);not null"                     json:"-"`
	Role          string        `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	Status        AccountStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Department    string        `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	ResetRequests int           `gorm:"not null;default:0"                             json:"reset_requests"`
	BaseModel
}

// TableName sets the table name.
func (Account) TableName() string { return "accounts" }

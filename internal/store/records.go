package store

// Kayıtlar veritabanındaki haliyle tutulur: tarih alanları sabit genişlikte
// UTC metin olarak saklanır (bkz. TimeLayout). Seq ekleme sırasını korur.

type UserRecord struct {
	Seq          uint   `gorm:"primaryKey;autoIncrement"`
	ID           string `gorm:"size:36;uniqueIndex;not null"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    string `gorm:"size:32;not null;autoCreateTime:false"`
}

func (UserRecord) TableName() string { return "users" }

type CustomerRecord struct {
	Seq       uint    `gorm:"primaryKey;autoIncrement"`
	ID        string  `gorm:"size:36;uniqueIndex;not null"`
	Name      string  `gorm:"size:255;not null"`
	Phone     *string `gorm:"size:50"`
	Address   *string `gorm:"size:500"`
	TaxNumber *string `gorm:"size:50"`
	Notes     *string `gorm:"type:text"`
	CreatedAt string  `gorm:"size:32;index;not null;autoCreateTime:false"`
}

func (CustomerRecord) TableName() string { return "customers" }

type PaymentRecord struct {
	Seq          uint    `gorm:"primaryKey;autoIncrement"`
	ID           string  `gorm:"size:36;uniqueIndex;not null"`
	CustomerID   string  `gorm:"size:36;index;not null"` // zorunlu ilişki yok
	CustomerName string  `gorm:"size:255"`
	Amount       float64 `gorm:"not null"`
	PaymentType  string  `gorm:"size:10;index;not null"`
	IsPaid       bool    `gorm:"index;not null;default:false"`
	PaymentDate  *string `gorm:"size:32"`
	DueDate      string  `gorm:"size:32;index;not null"`
	Description  *string `gorm:"size:500"`
	CreatedAt    string  `gorm:"size:32;index;not null;autoCreateTime:false"`
}

func (PaymentRecord) TableName() string { return "payments" }

type TransactionRecord struct {
	Seq             uint    `gorm:"primaryKey;autoIncrement"`
	ID              string  `gorm:"size:36;uniqueIndex;not null"`
	Type            string  `gorm:"size:10;index;not null"`
	PaymentMethod   string  `gorm:"size:10;index;not null"`
	Amount          float64 `gorm:"not null"`
	Description     string  `gorm:"size:500"`
	TransactionDate string  `gorm:"size:32;not null"`
	CreatedAt       string  `gorm:"size:32;index;not null;autoCreateTime:false"`
}

func (TransactionRecord) TableName() string { return "transactions" }

type AuditLogRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	ID          string `gorm:"size:36;uniqueIndex;not null"`
	Username    string `gorm:"size:100"`
	EntityType  string `gorm:"size:50;index"`
	EntityID    string `gorm:"size:36;index"`
	Action      string `gorm:"size:20"`
	Description string `gorm:"size:255"`
	CreatedAt   string `gorm:"size:32;not null;autoCreateTime:false"`
}

func (AuditLogRecord) TableName() string { return "audit_logs" }

// Records AutoMigrate için tüm tablolar.
func Records() []any {
	return []any{
		&UserRecord{},
		&CustomerRecord{},
		&PaymentRecord{},
		&TransactionRecord{},
		&AuditLogRecord{},
	}
}

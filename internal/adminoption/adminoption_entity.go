package adminoption

import "time"

// AdminOption backs the admin-managed dropdowns (shifts, departments,
// roles, redemption types). Unique per (category, value).
type AdminOption struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Category  string `gorm:"uniqueIndex:uq_admin_option"`
	Value     string `gorm:"uniqueIndex:uq_admin_option"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package reward

import "time"

// RewardReason is the catalog of awardable reasons.
type RewardReason struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Label     string `gorm:"uniqueIndex:uq_reward_reason_label"`
	Points    int    `gorm:"not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeReward is one award ledger entry.
type EmployeeReward struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID   int64     `gorm:"index"`
	ReasonID     int64     `gorm:"index"`
	Points       int       `gorm:"not null"`
	DateAwarded  time.Time `gorm:"type:date"`
	Notes        string
	RedemptionID *int64
	CreatedAt    time.Time
}

// EmployeeRewardRedemption is one redemption ledger entry.
type EmployeeRewardRedemption struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID   int64 `gorm:"index"`
	Points       int   `gorm:"not null"`
	Type         string
	ApprovedBy   string
	DateRedeemed time.Time `gorm:"type:date"`
	CreatedAt    time.Time
}

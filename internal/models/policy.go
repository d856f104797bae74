package models

// PolicyConfig is the single process-wide policy record. Channel and user
// ids are stored as strings so snowflake ids survive runtimes without
// 64-bit integers.
type PolicyConfig struct {
	ID              uint        `gorm:"primarykey" json:"-"`
	AllowedChannels StringSlice `gorm:"type:jsonb" json:"allowed_channels"`
	AdminUsers      StringSlice `gorm:"type:jsonb" json:"admin_users"`
	UnlimitedUsers  StringSlice `gorm:"type:jsonb" json:"unlimited_users"`
	DailyLimits     LimitMap    `gorm:"type:jsonb" json:"daily_limits"`
}

func (PolicyConfig) TableName() string {
	return "policy_config"
}

// DefaultPolicyConfig is the fallback when no persisted policy exists or
// the persisted copy cannot be read.
func DefaultPolicyConfig() *PolicyConfig {
	return &PolicyConfig{
		AllowedChannels: StringSlice{},
		AdminUsers:      StringSlice{},
		UnlimitedUsers:  StringSlice{},
		DailyLimits:     LimitMap{},
	}
}

package models

import "time"

// UserModel represents a registered account. Email is the login field.
type UserModel struct {
	Base
	Email         string     `json:"email"      gorm:"uniqueIndex;size:150;not null"`
	Username      string     `json:"username"   gorm:"size:150;not null"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Password      string     `json:"-"          gorm:"not null"`
	IsStaff       bool       `json:"is_staff"   gorm:"default:false"`
	IsSuperuser   bool       `json:"is_superuser" gorm:"default:false"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }

// IsElevated reports whether the user may write reference data.
func (u *UserModel) IsElevated() bool {
	return u.IsStaff || u.IsSuperuser
}

// UserSession is a server-side login session backing issued JWTs.
type UserSession struct {
	Base
	UserID    string     `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (UserSession) TableName() string { return "user_sessions" }

package model

import "time"

// Member represents a library member
type Member struct {
	// Primary key - Oracle IDENTITY (auto-increment)
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	// Core fields
	Name      string    `gorm:"column:name;type:VARCHAR2(100);not null"`
	Username  string    `gorm:"column:username;type:VARCHAR2(50);not null;uniqueIndex:idx_member_username"`
	Email     string    `gorm:"column:email;type:VARCHAR2(255);not null;uniqueIndex:idx_member_email"`
	BirthDate time.Time `gorm:"column:birth_date;not null"`
	Password  string    `gorm:"column:password;type:VARCHAR2(60);not null"` // 암호화된 비밀번호

	// Reliability counters - 반납 시에만 갱신
	OnTimeReturns    uint32  `gorm:"column:on_time_returns;not null;default:0"`
	ReliabilityScore float64 `gorm:"column:reliability_score;not null;default:0"`

	// Email verification
	EmailVerified bool       `gorm:"column:email_verified;not null;default:false"`
	OTP           *string    `gorm:"column:otp;type:VARCHAR2(6)"`
	OTPExpiry     *time.Time `gorm:"column:otp_expiry"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// NewMember creates a new Member instance
// Factory method pattern (Java의 static create 메서드와 동일)
func NewMember(name, username, email string, birthDate time.Time, password string) *Member {
	// Note: password should be hashed before storing (handled in service layer)
	return &Member{
		Name:      name,
		Username:  username,
		Email:     email,
		BirthDate: birthDate,
		Password:  password, // This should be hashed password
	}
}

// AgeAt returns the member's age in whole calendar years at now.
// The age increments on the birthday itself.
func (m *Member) AgeAt(now time.Time) int {
	birth := m.BirthDate.In(now.Location())

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// SetPasscode stores a one-time passcode valid until expiry
func (m *Member) SetPasscode(code string, expiry time.Time) {
	m.OTP = &code
	m.OTPExpiry = &expiry
}

// PasscodeExpired reports whether the stored passcode is missing an expiry or is past it
func (m *Member) PasscodeExpired(now time.Time) bool {
	return m.OTPExpiry == nil || m.OTPExpiry.Before(now)
}

// MarkVerified clears the passcode and sets the verified flag
func (m *Member) MarkVerified() {
	m.EmailVerified = true
	m.OTP = nil
	m.OTPExpiry = nil
}

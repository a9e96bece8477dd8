package models

// Weekday 7 değerli gün enum'u.
type Weekday string

const (
	WeekdayMonday    Weekday = "MONDAY"
	WeekdayTuesday   Weekday = "TUESDAY"
	WeekdayWednesday Weekday = "WEDNESDAY"
	WeekdayThursday  Weekday = "THURSDAY"
	WeekdayFriday    Weekday = "FRIDAY"
	WeekdaySaturday  Weekday = "SATURDAY"
	WeekdaySunday    Weekday = "SUNDAY"
)

// IsValid geçerli bir gün değeri mi kontrol eder.
func (d Weekday) IsValid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	}
	return false
}

// BusinessHour kartvizitin bir güne ait çalışma saatidir.
// Uygulama niyeti gün başına tek kayıttır; çift kayıt şema seviyesinde engellenmez.
type BusinessHour struct {
	ChildModel
	VCardID   uint    `gorm:"not null;index" json:"-"`
	Day       Weekday `gorm:"type:varchar(10);not null" json:"day"`
	OpenTime  *string `gorm:"type:varchar(5)" json:"openTime,omitempty"`
	CloseTime *string `gorm:"type:varchar(5)" json:"closeTime,omitempty"`
	IsClosed  bool    `gorm:"not null;default:false" json:"isClosed"`
}

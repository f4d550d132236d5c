package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionRecord archives one completed assessment.
type SessionRecord struct {
	gorm.Model
	Participant     string `gorm:"index"`
	Branch          string
	RewardTotal     int
	PunishmentTotal int
	RewardMean      float64
	PunishmentMean  float64
	RewardSD        float64
	PunishmentSD    float64
	Dominant        string
	ExportFile      string
	CompletedAt     time.Time
	Stimuli         []StimulusRecord `gorm:"foreignKey:SessionRecordID;constraint:OnDelete:CASCADE"`
}

// StimulusRecord is one ranked top stimulus of an archived session.
type StimulusRecord struct {
	ID              uint `gorm:"primaryKey"`
	SessionRecordID uint `gorm:"index"`
	Rank            int
	QID             string
	Question        string
	Rating          int
}

// WeekRecord archives one weekly tracker rollover.
type WeekRecord struct {
	gorm.Model
	Week       int `gorm:"index"`
	Phase      string
	Schedule   string
	Threshold  int
	Total      int
	Reinforcer string
	Outcome    string
	LogFile    string
	LoggedAt   time.Time
}

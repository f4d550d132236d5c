// Package repository persists completed assessments and weekly tracker
// rollovers to the optional archive database.
package repository

import (
	"context"
	"fmt"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/internal/tracker"

	"gorm.io/gorm"
)

// Archive writes summaries and week logs through GORM.
type Archive struct {
	db *gorm.DB
}

// NewArchive wraps an open, migrated database.
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// SaveSession stores a completed assessment and its ranked stimuli in a
// single transaction.
func (a *Archive) SaveSession(ctx context.Context, summary survey.Summary, exportPath string) (*models.SessionRecord, error) {
	record := &models.SessionRecord{
		Participant:     summary.Participant.Name,
		Branch:          string(summary.Branch),
		RewardTotal:     summary.Score.RewardTotal,
		PunishmentTotal: summary.Score.PunishmentTotal,
		RewardMean:      summary.Score.RewardMean,
		PunishmentMean:  summary.Score.PunishmentMean,
		RewardSD:        summary.Score.RewardSD,
		PunishmentSD:    summary.Score.PunishmentSD,
		Dominant:        string(summary.Score.Dominant),
		ExportFile:      exportPath,
		CompletedAt:     summary.CompletedAt,
	}
	for i, s := range summary.Stimuli {
		record.Stimuli = append(record.Stimuli, models.StimulusRecord{
			Rank:     i + 1,
			QID:      s.QID,
			Question: s.Text,
			Rating:   s.Rating,
		})
	}

	// Create also inserts the associated stimuli; Transaction rolls both
	// back together.
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to archive session for %s: %w", summary.Participant.Name, err)
	}
	return record, nil
}

// SaveWeek stores a weekly rollover.
func (a *Archive) SaveWeek(ctx context.Context, log tracker.WeekLog, reinforcer tracker.Reinforcer) (*models.WeekRecord, error) {
	record := &models.WeekRecord{
		Week:       log.Week,
		Phase:      string(log.Phase),
		Schedule:   string(log.Schedule),
		Threshold:  log.Threshold,
		Total:      log.Total,
		Reinforcer: reinforcer.Description(),
		Outcome:    string(log.Outcome.Status),
		LogFile:    log.Path,
		LoggedAt:   log.LoggedAt,
	}
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to archive week %d: %w", log.Week, err)
	}
	return record, nil
}

// ListSessions returns archived sessions for a participant, newest first,
// with their stimuli in rank order. An empty name lists everyone.
func (a *Archive) ListSessions(ctx context.Context, participant string) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	q := a.db.WithContext(ctx).
		Preload("Stimuli", func(db *gorm.DB) *gorm.DB { return db.Order("rank ASC") }).
		Order("completed_at DESC")
	if participant != "" {
		q = q.Where("participant = ?", participant)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list archived sessions: %w", err)
	}
	return records, nil
}

// ListWeeks returns archived rollovers in week order.
func (a *Archive) ListWeeks(ctx context.Context) ([]models.WeekRecord, error) {
	var records []models.WeekRecord
	if err := a.db.WithContext(ctx).Order("week ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list archived weeks: %w", err)
	}
	return records, nil
}

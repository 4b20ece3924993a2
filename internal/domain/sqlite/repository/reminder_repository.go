package repository

import (
	"errors"

	"spryte/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *DefaultReminderRepository {
	return &DefaultReminderRepository{db: db}
}

// FindByID is deliberately not owner-scoped: the service checks ownership
// after the lookup and answers 403 on a mismatch.
func (d *DefaultReminderRepository) FindByID(id int64) (*entity.Reminder, error) {
	var reminder entity.Reminder
	err := d.db.First(&reminder, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (d *DefaultReminderRepository) FindByUser(userID int64, includeCompleted bool) ([]*entity.Reminder, error) {
	q := d.db.Where("user_id = ?", userID)
	if !includeCompleted {
		q = q.Where("completed = ?", false)
	}

	var reminders []*entity.Reminder
	err := q.Order("due_date ASC").Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (d *DefaultReminderRepository) Save(reminder *entity.Reminder) error {
	return d.db.Save(reminder).Error
}

func (d *DefaultReminderRepository) Delete(reminder *entity.Reminder) error {
	return d.db.Delete(reminder).Error
}

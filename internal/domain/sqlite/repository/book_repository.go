package repository

import (
	"errors"

	"spryte/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultBookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *DefaultBookRepository {
	return &DefaultBookRepository{db: db}
}

// FindAllByUser returns every book of the user ordered by sibling order.
// Ties (duplicate sort orders from racing creates) fall back to id order,
// which is insertion order since ids are monotonic.
func (d *DefaultBookRepository) FindAllByUser(userID int64) ([]*entity.Book, error) {
	var books []*entity.Book
	err := d.db.
		Where("user_id = ?", userID).
		Order("sort_order ASC, id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (d *DefaultBookRepository) FindByID(id, userID int64) (*entity.Book, error) {
	var book entity.Book
	err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (d *DefaultBookRepository) FindByParent(userID int64, parentID *int64) ([]*entity.Book, error) {
	var books []*entity.Book
	err := scopeParent(d.db.Where("user_id = ?", userID), parentID).
		Order("sort_order ASC, id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// NextSortOrder allocates the order value for a new sibling: current maximum
// within the {user, parent} scope plus one, or 0 for an empty scope. This is
// not transactional; concurrent creates in the same scope may tie.
func (d *DefaultBookRepository) NextSortOrder(userID int64, parentID *int64) (int, error) {
	var next int
	err := scopeParent(d.db.Model(&entity.Book{}).Where("user_id = ?", userID), parentID).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (d *DefaultBookRepository) Save(book *entity.Book) error {
	return d.db.Save(book).Error
}

func (d *DefaultBookRepository) Delete(book *entity.Book) error {
	return d.db.Delete(book).Error
}

func scopeParent(q *gorm.DB, parentID *int64) *gorm.DB {
	if parentID == nil {
		return q.Where("parent_id IS NULL")
	}
	return q.Where("parent_id = ?", *parentID)
}

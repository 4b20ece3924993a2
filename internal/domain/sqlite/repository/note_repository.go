package repository

import (
	"errors"
	"strings"

	"spryte/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) FindByID(id, userID int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) FindByBook(userID, bookID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("sort_order ASC, id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByParent(userID int64, parentID *int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := scopeParent(d.db.Where("user_id = ?", userID), parentID).
		Order("sort_order ASC, id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindRecentByUser returns the user's notes in most-recently-updated order,
// capped at limit. Used by the flat, book-less listing.
func (d *DefaultNoteRepository) FindRecentByUser(userID int64, limit int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindInIDs resolves ids to notes, silently dropping ids that no longer
// exist. Link lists are weak references, so broken ids are tolerated.
func (d *DefaultNoteRepository) FindInIDs(userID int64, ids []int64) ([]*entity.Note, error) {
	if len(ids) == 0 {
		return []*entity.Note{}, nil
	}

	var notes []*entity.Note
	err := d.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindLinkedTo returns every note in the owner's corpus whose linked_note_ids
// contains the given id, regardless of book. Uses SQLite's json_each since
// the link list is stored as a JSON array.
func (d *DefaultNoteRepository) FindLinkedTo(userID, noteID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Raw(`SELECT * FROM notes
		     WHERE user_id = ?
		       AND EXISTS (SELECT 1 FROM json_each(notes.linked_note_ids) WHERE json_each.value = ?)`,
			userID, noteID).
		Scan(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ParentIDs returns the set of note ids that currently have at least one
// child, scoped to the user.
func (d *DefaultNoteRepository) ParentIDs(userID int64) (map[int64]bool, error) {
	var ids []int64
	err := d.db.Model(&entity.Note{}).
		Distinct("parent_id").
		Where("user_id = ? AND parent_id IS NOT NULL", userID).
		Pluck("parent_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Search matches the query as a case-insensitive substring of title or
// content, optionally scoped to one book. Results come back in storage order,
// capped at limit; there is no relevance ranking.
func (d *DefaultNoteRepository) Search(userID int64, query string, bookID *int64, limit int) ([]*entity.Note, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := d.db.
		Where("user_id = ?", userID).
		Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", pattern, pattern)
	if bookID != nil {
		q = q.Where("book_id = ?", *bookID)
	}

	var notes []*entity.Note
	err := q.Limit(limit).Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) NextSortOrder(userID, bookID int64, parentID *int64) (int, error) {
	var next int
	err := scopeParent(
		d.db.Model(&entity.Note{}).Where("user_id = ? AND book_id = ?", userID, bookID),
		parentID,
	).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Delete(note).Error
}

// DeleteByBook bulk-removes every note of the book. Used by the book cascade,
// which removes a book's notes without reconstructing their own hierarchy.
func (d *DefaultNoteRepository) DeleteByBook(bookID int64) error {
	return d.db.Where("book_id = ?", bookID).Delete(&entity.Note{}).Error
}

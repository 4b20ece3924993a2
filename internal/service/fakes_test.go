package service

import (
	"sort"
	"strings"

	"spryte/internal/domain/entity"
	"spryte/internal/utils/uid"
	"spryte/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	return validate
}

func testUser(id int64) *entity.User {
	return &entity.User{
		ID:    id,
		Email: "user@example.com",
		Name:  "Test User",
		Settings: entity.Settings{
			Theme:      "light",
			AIProvider: "openai",
		},
		ActiveAddons: []string{},
	}
}

func init() {
	uid.Init(1)
}

// fakeBookRepo is an in-memory BookRepository keeping insertion order.
type fakeBookRepo struct {
	books []*entity.Book
}

func (f *fakeBookRepo) sorted(books []*entity.Book) []*entity.Book {
	out := append([]*entity.Book{}, books...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeBookRepo) FindAllByUser(userID int64) ([]*entity.Book, error) {
	var out []*entity.Book
	for _, b := range f.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeBookRepo) FindByID(id, userID int64) (*entity.Book, error) {
	for _, b := range f.books {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) FindByParent(userID int64, parentID *int64) ([]*entity.Book, error) {
	var out []*entity.Book
	for _, b := range f.books {
		if b.UserID != userID {
			continue
		}
		if sameParent(b.ParentID, parentID) {
			out = append(out, b)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeBookRepo) NextSortOrder(userID int64, parentID *int64) (int, error) {
	next := 0
	for _, b := range f.books {
		if b.UserID == userID && sameParent(b.ParentID, parentID) && b.SortOrder >= next {
			next = b.SortOrder + 1
		}
	}
	return next, nil
}

func (f *fakeBookRepo) Save(book *entity.Book) error {
	for i, b := range f.books {
		if b.ID == book.ID {
			f.books[i] = book
			return nil
		}
	}
	f.books = append(f.books, book)
	return nil
}

func (f *fakeBookRepo) Delete(book *entity.Book) error {
	kept := f.books[:0]
	for _, b := range f.books {
		if b.ID != book.ID {
			kept = append(kept, b)
		}
	}
	f.books = kept
	return nil
}

// fakeNoteRepo is an in-memory NoteRepository. It doubles as the book
// service's note store.
type fakeNoteRepo struct {
	notes []*entity.Note
}

func (f *fakeNoteRepo) sorted(notes []*entity.Note) []*entity.Note {
	out := append([]*entity.Note{}, notes...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeNoteRepo) FindByID(id, userID int64) (*entity.Note, error) {
	for _, n := range f.notes {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNoteRepo) FindByBook(userID, bookID int64) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserID == userID && n.BookID == bookID {
			out = append(out, n)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeNoteRepo) FindByParent(userID int64, parentID *int64) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserID == userID && sameParent(n.ParentID, parentID) {
			out = append(out, n)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeNoteRepo) FindRecentByUser(userID int64, limit int) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNoteRepo) FindInIDs(userID int64, ids []int64) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, id := range ids {
		for _, n := range f.notes {
			if n.ID == id && n.UserID == userID {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) FindLinkedTo(userID, noteID int64) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserID == userID && n.HasLink(noteID) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) ParentIDs(userID int64) (map[int64]bool, error) {
	parents := map[int64]bool{}
	for _, n := range f.notes {
		if n.UserID == userID && n.ParentID != nil {
			parents[*n.ParentID] = true
		}
	}
	return parents, nil
}

func (f *fakeNoteRepo) Search(userID int64, query string, bookID *int64, limit int) ([]*entity.Note, error) {
	needle := strings.ToLower(query)
	var out []*entity.Note
	for _, n := range f.notes {
		if n.UserID != userID {
			continue
		}
		if bookID != nil && n.BookID != *bookID {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) NextSortOrder(userID, bookID int64, parentID *int64) (int, error) {
	next := 0
	for _, n := range f.notes {
		if n.UserID == userID && n.BookID == bookID && sameParent(n.ParentID, parentID) && n.SortOrder >= next {
			next = n.SortOrder + 1
		}
	}
	return next, nil
}

func (f *fakeNoteRepo) Save(note *entity.Note) error {
	for i, n := range f.notes {
		if n.ID == note.ID {
			f.notes[i] = note
			return nil
		}
	}
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeNoteRepo) Delete(note *entity.Note) error {
	kept := f.notes[:0]
	for _, n := range f.notes {
		if n.ID != note.ID {
			kept = append(kept, n)
		}
	}
	f.notes = kept
	return nil
}

func (f *fakeNoteRepo) DeleteByBook(bookID int64) error {
	kept := f.notes[:0]
	for _, n := range f.notes {
		if n.BookID != bookID {
			kept = append(kept, n)
		}
	}
	f.notes = kept
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) FindByID(id int64) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := f.FindByEmail(email)
	return u != nil, nil
}

func (f *fakeUserRepo) Save(user *entity.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	f.users = append(f.users, user)
	return nil
}

// fakeReminderRepo is an in-memory ReminderRepository.
type fakeReminderRepo struct {
	reminders []*entity.Reminder
}

func (f *fakeReminderRepo) FindByID(id int64) (*entity.Reminder, error) {
	for _, r := range f.reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReminderRepo) FindByUser(userID int64, includeCompleted bool) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.UserID != userID {
			continue
		}
		if !includeCompleted && r.Completed {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out, nil
}

func (f *fakeReminderRepo) Save(reminder *entity.Reminder) error {
	for i, r := range f.reminders {
		if r.ID == reminder.ID {
			f.reminders[i] = reminder
			return nil
		}
	}
	f.reminders = append(f.reminders, reminder)
	return nil
}

func (f *fakeReminderRepo) Delete(reminder *entity.Reminder) error {
	kept := f.reminders[:0]
	for _, r := range f.reminders {
		if r.ID != reminder.ID {
			kept = append(kept, r)
		}
	}
	f.reminders = kept
	return nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

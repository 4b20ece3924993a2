package service

import (
	"testing"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookFixture() (*BookService, *fakeBookRepo, *fakeNoteRepo, *entity.User) {
	bookRepo := &fakeBookRepo{}
	noteRepo := &fakeNoteRepo{}
	svc := NewBookService(bookRepo, noteRepo, newTestValidator())
	return svc, bookRepo, noteRepo, testUser(1)
}

func seedBook(repo *fakeBookRepo, userID int64, name string, parentID *int64, order int) *entity.Book {
	now := utils.NowUTC()
	book := &entity.Book{
		ID:        uid.Generate(),
		UserID:    userID,
		Name:      name,
		ParentID:  parentID,
		Color:     defaultBookColor,
		Icon:      defaultBookIcon,
		SortOrder: order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Save(book)
	return book
}

func seedNote(repo *fakeNoteRepo, userID, bookID int64, title string, parentID *int64, order int) *entity.Note {
	now := utils.NowUTC()
	note := &entity.Note{
		ID:            uid.Generate(),
		UserID:        userID,
		BookID:        bookID,
		Title:         title,
		ParentID:      parentID,
		CanvasData:    emptyCanvas,
		Annotations:   []entity.Annotation{},
		LinkedNoteIDs: []int64{},
		Tags:          []string{},
		SortOrder:     order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_ = repo.Save(note)
	return note
}

func TestCreateBookAllocatesSequentialOrder(t *testing.T) {
	svc, _, _, user := newBookFixture()

	for want := 0; want < 3; want++ {
		book, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "Book"})
		require.Nil(t, apierr)
		assert.Equal(t, want, book.Order)
	}
}

func TestCreateBookScopesOrderPerParent(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	parent := seedBook(repo, user.ID, "Parent", nil, 0)

	root, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "Root sibling"})
	require.Nil(t, apierr)
	child, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "Child", ParentID: &parent.ID})
	require.Nil(t, apierr)

	assert.Equal(t, 1, root.Order)
	assert.Equal(t, 0, child.Order)
}

func TestCreateBookRejectsMissingParent(t *testing.T) {
	svc, _, _, user := newBookFixture()
	missing := int64(999)

	_, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "Orphan", ParentID: &missing})
	assert.Equal(t, apierror.ParentNotFoundError, apierr)
}

func TestCreateBookRejectsBlankName(t *testing.T) {
	svc, _, _, user := newBookFixture()

	_, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "   "})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestCreateBookAppliesDefaults(t *testing.T) {
	svc, _, _, user := newBookFixture()

	book, apierr := svc.CreateBook(user, &contract.CreateBookRequest{Name: "Plain"})
	require.Nil(t, apierr)
	assert.Equal(t, defaultBookColor, book.Color)
	assert.Equal(t, defaultBookIcon, book.Icon)
}

func TestUpdateBookRejectsSelfParent(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	book := seedBook(repo, user.ID, "Solo", nil, 0)

	req := &contract.UpdateBookRequest{
		ParentID: contract.Optional[int64]{Set: true, Value: &book.ID},
	}
	_, apierr := svc.UpdateBook(user, book.ID, req)
	assert.Equal(t, apierror.CircularReferenceError, apierr)

	stored, _ := repo.FindByID(book.ID, user.ID)
	assert.Nil(t, stored.ParentID)
}

func TestUpdateBookRejectsDescendantParent(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	a := seedBook(repo, user.ID, "A", nil, 0)
	b := seedBook(repo, user.ID, "B", &a.ID, 0)
	c := seedBook(repo, user.ID, "C", &b.ID, 0)

	req := &contract.UpdateBookRequest{
		ParentID: contract.Optional[int64]{Set: true, Value: &c.ID},
	}
	_, apierr := svc.UpdateBook(user, a.ID, req)
	assert.Equal(t, apierror.DescendantParentError, apierr)
}

func TestUpdateBookDetachesToRoot(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	parent := seedBook(repo, user.ID, "Parent", nil, 0)
	child := seedBook(repo, user.ID, "Child", &parent.ID, 0)

	req := &contract.UpdateBookRequest{
		ParentID: contract.Optional[int64]{Set: true, Value: nil},
	}
	updated, apierr := svc.UpdateBook(user, child.ID, req)
	require.Nil(t, apierr)
	assert.Nil(t, updated.ParentID)
}

func TestUpdateBookClearsDescription(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	desc := "old description"
	book := seedBook(repo, user.ID, "Described", nil, 0)
	book.Description = &desc

	req := &contract.UpdateBookRequest{
		Description: contract.Optional[string]{Set: true, Value: nil},
	}
	updated, apierr := svc.UpdateBook(user, book.ID, req)
	require.Nil(t, apierr)
	assert.Nil(t, updated.Description)
}

func TestUpdateBookIgnoresAbsentFields(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	book := seedBook(repo, user.ID, "Stable", nil, 3)

	updated, apierr := svc.UpdateBook(user, book.ID, &contract.UpdateBookRequest{})
	require.Nil(t, apierr)
	assert.Equal(t, "Stable", updated.Name)
	assert.Equal(t, 3, updated.Order)
	assert.Equal(t, defaultBookColor, updated.Color)
}

func TestDeleteBookCascadesSubtreeAndNotes(t *testing.T) {
	svc, repo, noteRepo, user := newBookFixture()
	science := seedBook(repo, user.ID, "Science", nil, 0)
	physics := seedBook(repo, user.ID, "Physics", &science.ID, 0)
	momentum := seedBook(repo, user.ID, "Momentum", &physics.ID, 0)
	energy := seedBook(repo, user.ID, "Energy", &physics.ID, 1)
	unrelated := seedBook(repo, user.ID, "History", nil, 1)

	seedNote(noteRepo, user.ID, momentum.ID, "Collisions", nil, 0)
	seedNote(noteRepo, user.ID, energy.ID, "Kinetic", nil, 0)
	kept := seedNote(noteRepo, user.ID, unrelated.ID, "WW2", nil, 0)

	apierr := svc.DeleteBook(user, science.ID)
	require.Nil(t, apierr)

	remaining, _ := repo.FindAllByUser(user.ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, unrelated.ID, remaining[0].ID)

	assert.Len(t, noteRepo.notes, 1)
	assert.Equal(t, kept.ID, noteRepo.notes[0].ID)
}

func TestDeleteBookNotFound(t *testing.T) {
	svc, _, _, user := newBookFixture()

	apierr := svc.DeleteBook(user, 12345)
	assert.Equal(t, apierror.BookNotFoundError, apierr)
}

func TestGetTreeNestsBySortOrder(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	root := seedBook(repo, user.ID, "Root", nil, 0)
	second := seedBook(repo, user.ID, "Second", &root.ID, 1)
	first := seedBook(repo, user.ID, "First", &root.ID, 0)

	tree, apierr := svc.GetTree(user)
	require.Nil(t, apierr)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, first.ID, tree[0].Children[0].ID)
	assert.Equal(t, second.ID, tree[0].Children[1].ID)
}

func TestGetTreePromotesOrphans(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	gone := int64(424242)
	seedBook(repo, user.ID, "Root", nil, 0)
	orphan := seedBook(repo, user.ID, "Orphan", &gone, 1)

	tree, apierr := svc.GetTree(user)
	require.Nil(t, apierr)
	require.Len(t, tree, 2)
	assert.Equal(t, orphan.ID, tree[1].ID)
}

func TestGetTreeScopedToOwner(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	seedBook(repo, user.ID, "Mine", nil, 0)
	seedBook(repo, 2, "Theirs", nil, 0)

	tree, apierr := svc.GetTree(user)
	require.Nil(t, apierr)
	assert.Len(t, tree, 1)
}

func TestGetChildrenOrdersSiblings(t *testing.T) {
	svc, repo, _, user := newBookFixture()
	parent := seedBook(repo, user.ID, "Parent", nil, 0)
	// Equal orders happen when two creations race the allocator; ties fall
	// back to id, which tracks insertion order.
	b1 := seedBook(repo, user.ID, "One", &parent.ID, 0)
	b2 := seedBook(repo, user.ID, "Two", &parent.ID, 0)

	children, apierr := svc.GetChildren(user, parent.ID)
	require.Nil(t, apierr)
	require.Len(t, children, 2)
	assert.Equal(t, b1.ID, children[0].ID)
	assert.Equal(t, b2.ID, children[1].ID)
}

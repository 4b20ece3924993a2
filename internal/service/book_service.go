package service

import (
	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/domain/tree"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	defaultBookColor = "#6366f1"
	defaultBookIcon  = "book"
)

type BookRepository interface {
	FindAllByUser(userID int64) ([]*entity.Book, error)
	FindByID(id, userID int64) (*entity.Book, error)
	FindByParent(userID int64, parentID *int64) ([]*entity.Book, error)
	NextSortOrder(userID int64, parentID *int64) (int, error)
	Save(book *entity.Book) error
	Delete(book *entity.Book) error
}

// BookNoteStore is the slice of the note store the book cascade needs: when a
// book goes away, all of its notes go with it in one bulk removal.
type BookNoteStore interface {
	DeleteByBook(bookID int64) error
}

type BookService struct {
	BookRepo  BookRepository
	NoteStore BookNoteStore
	Validate  *validator.Validate
}

func NewBookService(bookRepo BookRepository, noteStore BookNoteStore, validate *validator.Validate) *BookService {
	return &BookService{
		BookRepo:  bookRepo,
		NoteStore: noteStore,
		Validate:  validate,
	}
}

func (b *BookService) GetBooks(actor *entity.User) ([]*contract.BookResponse, apierror.ErrorResponse) {
	books, err := b.BookRepo.FindAllByUser(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch books: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BookResponse, len(books))
	for i, book := range books {
		resp[i] = toBookResponse(book)
	}
	return resp, nil
}

// GetTree returns the user's whole book forest, nested. The flat list comes
// back pre-sorted by sibling order, so the builder's output order is stable.
func (b *BookService) GetTree(actor *entity.User) ([]*contract.BookTreeNode, apierror.ErrorResponse) {
	books, err := b.BookRepo.FindAllByUser(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch books: %v", err)
		return nil, apierror.InternalServerError
	}

	nodes := make([]*contract.BookTreeNode, len(books))
	for i, book := range books {
		nodes[i] = &contract.BookTreeNode{
			BookResponse: *toBookResponse(book),
			Children:     []*contract.BookTreeNode{},
		}
	}

	return tree.Build(nodes, func(parent, child *contract.BookTreeNode) {
		parent.Children = append(parent.Children, child)
	}), nil
}

func (b *BookService) GetBook(actor *entity.User, bookID int64) (*contract.BookResponse, apierror.ErrorResponse) {
	book, apierr := b.fetchBook(actor, bookID)
	if apierr != nil {
		return nil, apierr
	}
	return toBookResponse(book), nil
}

func (b *BookService) GetChildren(actor *entity.User, bookID int64) ([]*contract.BookResponse, apierror.ErrorResponse) {
	if _, apierr := b.fetchBook(actor, bookID); apierr != nil {
		return nil, apierr
	}

	children, err := b.BookRepo.FindByParent(actor.ID, &bookID)
	if err != nil {
		log.Errorf("failed to fetch book children: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BookResponse, len(children))
	for i, child := range children {
		resp[i] = toBookResponse(child)
	}
	return resp, nil
}

func (b *BookService) CreateBook(actor *entity.User, req *contract.CreateBookRequest) (*contract.BookResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if req.ParentID != nil {
		parent, err := b.BookRepo.FindByID(*req.ParentID, actor.ID)
		if err != nil {
			log.Errorf("failed to fetch parent book: %v", err)
			return nil, apierror.InternalServerError
		}
		if parent == nil {
			return nil, apierror.ParentNotFoundError
		}
	}

	order, err := b.BookRepo.NextSortOrder(actor.ID, req.ParentID)
	if err != nil {
		log.Errorf("failed to allocate sibling order: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	book := &entity.Book{
		ID:          uid.Generate(),
		UserID:      actor.ID,
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
		Color:       defaultBookColor,
		Icon:        defaultBookIcon,
		SortOrder:   order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Color != nil && *req.Color != "" {
		book.Color = *req.Color
	}
	if req.Icon != nil && *req.Icon != "" {
		book.Icon = *req.Icon
	}

	if err := b.BookRepo.Save(book); err != nil {
		log.Errorf("failed to save book: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBookResponse(book), nil
}

func (b *BookService) UpdateBook(actor *entity.User, bookID int64, req *contract.UpdateBookRequest) (*contract.BookResponse, apierror.ErrorResponse) {
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	book, apierr := b.fetchBook(actor, bookID)
	if apierr != nil {
		return nil, apierr
	}

	if req.ParentID.Set {
		if apierr := b.checkReparent(actor, book, req.ParentID.Value); apierr != nil {
			return nil, apierr
		}
		book.ParentID = req.ParentID.Value
	}

	if req.Name != nil {
		book.Name = trimmed(*req.Name)
	}
	if req.Description.Set {
		book.Description = req.Description.Value
	}
	if req.Color.Set && req.Color.Value != nil {
		book.Color = *req.Color.Value
	}
	if req.Icon.Set && req.Icon.Value != nil {
		book.Icon = *req.Icon.Value
	}
	if req.Order != nil {
		book.SortOrder = *req.Order
	}

	book.UpdatedAt = utils.NowUTC()
	if err := b.BookRepo.Save(book); err != nil {
		log.Errorf("failed to update book: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBookResponse(book), nil
}

// DeleteBook removes the book, every descendant book and every note held by
// any of them. The cascade is a sequence of individually-atomic deletes; a
// failure partway leaves the earlier deletions committed.
func (b *BookService) DeleteBook(actor *entity.User, bookID int64) apierror.ErrorResponse {
	book, apierr := b.fetchBook(actor, bookID)
	if apierr != nil {
		return apierr
	}

	if err := b.cascadeDelete(actor, book); err != nil {
		log.Errorf("failed to cascade book delete: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// cascadeDelete walks the subtree with an explicit worklist instead of
// recursing, so arbitrarily deep trees cannot exhaust the stack. For each
// book: descendants are queued, its notes are bulk-removed, then the record
// itself goes.
func (b *BookService) cascadeDelete(actor *entity.User, root *entity.Book) error {
	stack := []*entity.Book{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := b.BookRepo.FindByParent(actor.ID, &current.ID)
		if err != nil {
			return err
		}
		stack = append(stack, children...)

		if err := b.NoteStore.DeleteByBook(current.ID); err != nil {
			return err
		}

		if err := b.BookRepo.Delete(current); err != nil {
			return err
		}
	}
	return nil
}

// checkReparent validates a parent change before any mutation: self-parenting
// and moves under the book's own descendants are rejected, and the new parent
// must resolve within the owner's books. nil detaches the book to root.
func (b *BookService) checkReparent(actor *entity.User, book *entity.Book, newParentID *int64) apierror.ErrorResponse {
	if newParentID == nil {
		return nil
	}

	if *newParentID == book.ID {
		return apierror.CircularReferenceError
	}

	parent, err := b.BookRepo.FindByID(*newParentID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch parent book: %v", err)
		return apierror.InternalServerError
	}
	if parent == nil {
		return apierror.ParentNotFoundError
	}

	// Ancestor walk: if the candidate parent sits anywhere beneath this
	// book, the move would close a cycle and orphan the whole subtree.
	seen := map[int64]bool{book.ID: true}
	for parent != nil {
		if parent.ID == book.ID {
			return apierror.DescendantParentError
		}
		if seen[parent.ID] {
			break // preexisting corrupt chain, do not loop
		}
		seen[parent.ID] = true

		if parent.ParentID == nil {
			break
		}
		parent, err = b.BookRepo.FindByID(*parent.ParentID, actor.ID)
		if err != nil {
			log.Errorf("failed to walk book ancestors: %v", err)
			return apierror.InternalServerError
		}
	}
	return nil
}

func (b *BookService) fetchBook(actor *entity.User, bookID int64) (*entity.Book, apierror.ErrorResponse) {
	book, err := b.BookRepo.FindByID(bookID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch book: %v", err)
		return nil, apierror.InternalServerError
	}

	if book == nil {
		return nil, apierror.BookNotFoundError
	}
	return book, nil
}

func toBookResponse(book *entity.Book) *contract.BookResponse {
	return &contract.BookResponse{
		ID:          book.ID,
		UserID:      book.UserID,
		Name:        book.Name,
		ParentID:    book.ParentID,
		Description: book.Description,
		Color:       book.Color,
		Icon:        book.Icon,
		Order:       book.SortOrder,
		CreatedAt:   utils.FormatEpoch(book.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(book.UpdatedAt),
	}
}

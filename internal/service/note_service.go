package service

import (
	"encoding/json"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/domain/tree"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"
	"spryte/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const (
	// searchResultCap bounds substring searches; there is no ranking, the
	// first matches in storage order win.
	searchResultCap = 50
	// recentNotesCap bounds the flat, book-less note listing.
	recentNotesCap = 100
)

var emptyCanvas = json.RawMessage(`{"shapes":[],"bindings":[]}`)

type NoteRepository interface {
	FindByID(id, userID int64) (*entity.Note, error)
	FindByBook(userID, bookID int64) ([]*entity.Note, error)
	FindByParent(userID int64, parentID *int64) ([]*entity.Note, error)
	FindRecentByUser(userID int64, limit int) ([]*entity.Note, error)
	FindInIDs(userID int64, ids []int64) ([]*entity.Note, error)
	FindLinkedTo(userID, noteID int64) ([]*entity.Note, error)
	ParentIDs(userID int64) (map[int64]bool, error)
	Search(userID int64, query string, bookID *int64, limit int) ([]*entity.Note, error)
	NextSortOrder(userID, bookID int64, parentID *int64) (int, error)
	Save(note *entity.Note) error
	Delete(note *entity.Note) error
	DeleteByBook(bookID int64) error
}

type NoteService struct {
	NoteRepo NoteRepository
	BookRepo BookRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, bookRepo BookRepository, validate *validator.Validate) *NoteService {
	return &NoteService{
		NoteRepo: noteRepo,
		BookRepo: bookRepo,
		Validate: validate,
	}
}

// GetNotes returns a flat listing: the notes of one book in sibling order, or
// the user's most recently updated notes when no book is given. Canvas
// payloads are omitted either way.
func (n *NoteService) GetNotes(actor *entity.User, bookID *int64) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	var notes []*entity.Note
	var err error

	if bookID != nil {
		if _, apierr := n.fetchBook(actor, *bookID); apierr != nil {
			return nil, apierr
		}
		notes, err = n.NoteRepo.FindByBook(actor.ID, *bookID)
	} else {
		notes, err = n.NoteRepo.FindRecentByUser(actor.ID, recentNotesCap)
	}

	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note, false)
	}
	return resp, nil
}

func (n *NoteService) GetNote(actor *entity.User, noteID int64) (*contract.NoteDetailResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	linked, err := n.NoteRepo.FindInIDs(actor.ID, note.LinkedNoteIDs)
	if err != nil {
		log.Errorf("failed to resolve linked notes: %v", err)
		return nil, apierror.InternalServerError
	}

	parents, err := n.NoteRepo.ParentIDs(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch note parent set: %v", err)
		return nil, apierror.InternalServerError
	}

	summaries := make([]*contract.NoteSummary, len(linked))
	for i, ln := range linked {
		summaries[i] = toNoteSummary(ln, parents[ln.ID])
	}

	return &contract.NoteDetailResponse{
		Note:        toNoteResponse(note, true),
		LinkedNotes: summaries,
	}, nil
}

// GetTree returns one book's notes as a nested forest of summaries. Full
// canvas payloads never ride along on tree responses.
func (n *NoteService) GetTree(actor *entity.User, bookID int64) ([]*contract.NoteTreeNode, apierror.ErrorResponse) {
	if _, apierr := n.fetchBook(actor, bookID); apierr != nil {
		return nil, apierr
	}

	notes, err := n.NoteRepo.FindByBook(actor.ID, bookID)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	parents, err := n.NoteRepo.ParentIDs(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch note parent set: %v", err)
		return nil, apierror.InternalServerError
	}

	nodes := make([]*contract.NoteTreeNode, len(notes))
	for i, note := range notes {
		nodes[i] = &contract.NoteTreeNode{
			NoteSummary: *toNoteSummary(note, parents[note.ID]),
			Children:    []*contract.NoteTreeNode{},
		}
	}

	return tree.Build(nodes, func(parent, child *contract.NoteTreeNode) {
		parent.Children = append(parent.Children, child)
	}), nil
}

func (n *NoteService) CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if _, apierr := n.fetchBook(actor, req.BookID); apierr != nil {
		return nil, apierr
	}

	if req.ParentID != nil {
		parent, err := n.NoteRepo.FindByID(*req.ParentID, actor.ID)
		if err != nil {
			log.Errorf("failed to fetch parent note: %v", err)
			return nil, apierror.InternalServerError
		}
		if parent == nil {
			return nil, apierror.ParentNotFoundError
		}
	}

	order, err := n.NoteRepo.NextSortOrder(actor.ID, req.BookID, req.ParentID)
	if err != nil {
		log.Errorf("failed to allocate sibling order: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:            uid.Generate(),
		UserID:        actor.ID,
		BookID:        req.BookID,
		Title:         req.Title,
		ParentID:      req.ParentID,
		CanvasData:    emptyCanvas,
		Annotations:   []entity.Annotation{},
		LinkedNoteIDs: []int64{},
		Tags:          []string{},
		SortOrder:     order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if len(req.CanvasData) > 0 {
		note.CanvasData = req.CanvasData
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note, true), nil
}

func (n *NoteService) UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if req.ParentID.Set {
		if apierr := n.checkReparent(actor, note, req.ParentID.Value); apierr != nil {
			return nil, apierr
		}
		note.ParentID = req.ParentID.Value
	}

	if req.BookID != nil {
		if _, apierr := n.fetchBook(actor, *req.BookID); apierr != nil {
			return nil, apierr
		}
		note.BookID = *req.BookID
	}

	if req.Title != nil {
		note.Title = trimmed(*req.Title)
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if len(req.CanvasData) > 0 {
		note.CanvasData = req.CanvasData
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	if req.Annotations != nil {
		note.Annotations = *req.Annotations
	}
	if req.Order != nil {
		note.SortOrder = *req.Order
	}

	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note, true), nil
}

// UpdateCanvas overwrites only the canvas payload. Autosave path, so it skips
// the full update machinery.
func (n *NoteService) UpdateCanvas(actor *entity.User, noteID int64, req *contract.CanvasRequest) (string, apierror.ErrorResponse) {
	if len(req.CanvasData) == 0 {
		return "", apierror.NewValidationError("canvas_data", "This field is required")
	}

	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return "", apierr
	}

	note.CanvasData = req.CanvasData
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save canvas: %v", err)
		return "", apierror.InternalServerError
	}
	return utils.FormatEpoch(note.UpdatedAt), nil
}

// DeleteNote removes the note and its descendant notes. Before each record
// goes, its id is pruned from the link list of every note in the owner's
// corpus; that scan is corpus-wide, not book-wide, because links cross books.
func (n *NoteService) DeleteNote(actor *entity.User, noteID int64) apierror.ErrorResponse {
	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return apierr
	}

	if err := n.cascadeDelete(actor, note); err != nil {
		log.Errorf("failed to cascade note delete: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// cascadeDelete is a worklist traversal like the book cascade, with the
// link-graph cleanup folded in per node. Partial completion on failure is
// accepted; there is no rollback.
func (n *NoteService) cascadeDelete(actor *entity.User, root *entity.Note) error {
	stack := []*entity.Note{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		linkers, err := n.NoteRepo.FindLinkedTo(actor.ID, current.ID)
		if err != nil {
			return err
		}
		for _, linker := range linkers {
			linker.LinkedNoteIDs = removeID(linker.LinkedNoteIDs, current.ID)
			if err := n.NoteRepo.Save(linker); err != nil {
				return err
			}
		}

		children, err := n.NoteRepo.FindByParent(actor.ID, &current.ID)
		if err != nil {
			return err
		}
		stack = append(stack, children...)

		if err := n.NoteRepo.Delete(current); err != nil {
			return err
		}
	}
	return nil
}

// AddLink records a weak reference to another note. Idempotent: linking to
// itself or to an already-linked note changes nothing.
func (n *NoteService) AddLink(actor *entity.User, noteID int64, req *contract.AddLinkRequest) ([]int64, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	target, err := n.NoteRepo.FindByID(req.LinkedNoteID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch linked note: %v", err)
		return nil, apierror.InternalServerError
	}
	if target == nil {
		return nil, apierror.NoteNotFoundError
	}

	if target.ID == note.ID || note.HasLink(target.ID) {
		return note.LinkedNoteIDs, nil
	}

	note.LinkedNoteIDs = append(note.LinkedNoteIDs, target.ID)
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note link: %v", err)
		return nil, apierror.InternalServerError
	}
	return note.LinkedNoteIDs, nil
}

func (n *NoteService) RemoveLink(actor *entity.User, noteID, targetID int64) ([]int64, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if !note.HasLink(targetID) {
		return note.LinkedNoteIDs, nil
	}

	note.LinkedNoteIDs = removeID(note.LinkedNoteIDs, targetID)
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to remove note link: %v", err)
		return nil, apierror.InternalServerError
	}
	return note.LinkedNoteIDs, nil
}

func (n *NoteService) AddAnnotation(actor *entity.User, noteID int64, req *contract.AddAnnotationRequest) (*entity.Annotation, []entity.Annotation, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, nil, apierr
	}

	blockID := req.BlockID
	if blockID == "" {
		blockID = req.ShapeID
	}

	annotation := entity.Annotation{
		ID:           uuid.NewString(),
		SelectedText: req.SelectedText,
		Insight:      req.Insight,
		BlockID:      blockID,
		Prompt:       req.Prompt,
		CreatedAt:    utils.FormatEpoch(utils.NowUTC()),
	}

	note.Annotations = append(note.Annotations, annotation)
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save annotation: %v", err)
		return nil, nil, apierror.InternalServerError
	}
	return &annotation, note.Annotations, nil
}

func (n *NoteService) DeleteAnnotation(actor *entity.User, noteID int64, annotationID string) ([]entity.Annotation, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	kept := make([]entity.Annotation, 0, len(note.Annotations))
	for _, a := range note.Annotations {
		if a.ID != annotationID {
			kept = append(kept, a)
		}
	}

	note.Annotations = kept
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to delete annotation: %v", err)
		return nil, apierror.InternalServerError
	}
	return note.Annotations, nil
}

func (n *NoteService) Search(actor *entity.User, query string, bookID *int64) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	if trimmed(query) == "" {
		return nil, apierror.NewValidationError("q", "This field is required")
	}

	notes, err := n.NoteRepo.Search(actor.ID, trimmed(query), bookID, searchResultCap)
	if err != nil {
		log.Errorf("failed to search notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note, false)
	}
	return resp, nil
}

func (n *NoteService) checkReparent(actor *entity.User, note *entity.Note, newParentID *int64) apierror.ErrorResponse {
	if newParentID == nil {
		return nil
	}

	if *newParentID == note.ID {
		return apierror.CircularReferenceError
	}

	parent, err := n.NoteRepo.FindByID(*newParentID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch parent note: %v", err)
		return apierror.InternalServerError
	}
	if parent == nil {
		return apierror.ParentNotFoundError
	}

	seen := map[int64]bool{note.ID: true}
	for parent != nil {
		if parent.ID == note.ID {
			return apierror.DescendantParentError
		}
		if seen[parent.ID] {
			break
		}
		seen[parent.ID] = true

		if parent.ParentID == nil {
			break
		}
		parent, err = n.NoteRepo.FindByID(*parent.ParentID, actor.ID)
		if err != nil {
			log.Errorf("failed to walk note ancestors: %v", err)
			return apierror.InternalServerError
		}
	}
	return nil
}

func (n *NoteService) fetchNote(actor *entity.User, noteID int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(noteID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return note, nil
}

func (n *NoteService) fetchBook(actor *entity.User, bookID int64) (*entity.Book, apierror.ErrorResponse) {
	book, err := n.BookRepo.FindByID(bookID, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch book: %v", err)
		return nil, apierror.InternalServerError
	}

	if book == nil {
		return nil, apierror.BookNotFoundError
	}
	return book, nil
}

func removeID(ids []int64, target int64) []int64 {
	kept := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}

func toNoteResponse(note *entity.Note, includeCanvas bool) *contract.NoteResponse {
	resp := &contract.NoteResponse{
		ID:            note.ID,
		UserID:        note.UserID,
		BookID:        note.BookID,
		Title:         note.Title,
		ParentID:      note.ParentID,
		Content:       note.Content,
		Annotations:   note.Annotations,
		LinkedNoteIDs: note.LinkedNoteIDs,
		Tags:          note.Tags,
		Order:         note.SortOrder,
		CreatedAt:     utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(note.UpdatedAt),
	}
	if resp.Annotations == nil {
		resp.Annotations = []entity.Annotation{}
	}
	if resp.LinkedNoteIDs == nil {
		resp.LinkedNoteIDs = []int64{}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if includeCanvas {
		resp.CanvasData = note.CanvasData
	}
	return resp
}

func toNoteSummary(note *entity.Note, hasChildren bool) *contract.NoteSummary {
	return &contract.NoteSummary{
		ID:          note.ID,
		Title:       note.Title,
		ParentID:    note.ParentID,
		BookID:      note.BookID,
		Order:       note.SortOrder,
		HasChildren: hasChildren,
		LinkedCount: len(note.LinkedNoteIDs),
	}
}

package handler

import (
	"net/http"
	"strconv"

	"spryte/internal/contract"
	"spryte/internal/domain/entity"
	"spryte/internal/utils"
	"spryte/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetNotes(actor *entity.User, bookID *int64) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(actor *entity.User, noteID int64) (*contract.NoteDetailResponse, apierror.ErrorResponse)
	GetTree(actor *entity.User, bookID int64) ([]*contract.NoteTreeNode, apierror.ErrorResponse)
	CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateCanvas(actor *entity.User, noteID int64, req *contract.CanvasRequest) (string, apierror.ErrorResponse)
	DeleteNote(actor *entity.User, noteID int64) apierror.ErrorResponse
	AddLink(actor *entity.User, noteID int64, req *contract.AddLinkRequest) ([]int64, apierror.ErrorResponse)
	RemoveLink(actor *entity.User, noteID, targetID int64) ([]int64, apierror.ErrorResponse)
	AddAnnotation(actor *entity.User, noteID int64, req *contract.AddAnnotationRequest) (*entity.Annotation, []entity.Annotation, apierror.ErrorResponse)
	DeleteAnnotation(actor *entity.User, noteID int64, annotationID string) ([]entity.Annotation, apierror.ErrorResponse)
	Search(actor *entity.User, query string, bookID *int64) ([]*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	bookID, err := parseOptionalID(c.QueryParam("book_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("book_id", "int64"))
	}

	notes, apierr := n.NoteService.GetNotes(user, bookID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetTree(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("book_id", "int64"))
	}

	tree, apierr := n.NoteService.GetTree(user, bookID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": tree}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	detail, apierr := n.NoteService.GetNote(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, detail)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.CreateNote(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Note created", "note": note}
	return c.JSON(http.StatusCreated, &resp)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.UpdateNote(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Note updated", "note": note}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) UpdateCanvas(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.CanvasRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updatedAt, apierr := n.NoteService.UpdateCanvas(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Canvas saved", "updated_at": updatedAt}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := n.NoteService.DeleteNote(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Note deleted"}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) AddLink(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.AddLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	linked, apierr := n.NoteService.AddLink(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Link added", "linked_note_ids": linked}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) RemoveLink(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	targetID, err := strconv.ParseInt(c.Param("linked_note_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("linked_note_id", "int64"))
	}

	linked, apierr := n.NoteService.RemoveLink(user, id, targetID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Link removed", "linked_note_ids": linked}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) AddAnnotation(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.AddAnnotationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	annotation, annotations, apierr := n.NoteService.AddAnnotation(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{
		"message":     "Annotation added",
		"annotation":  annotation,
		"annotations": annotations,
	}
	return c.JSON(http.StatusCreated, &resp)
}

func (n *DefaultNoteRoute) DeleteAnnotation(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	annotations, apierr := n.NoteService.DeleteAnnotation(user, id, c.Param("annotation_id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Annotation deleted", "annotations": annotations}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) Search(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	bookID, err := parseOptionalID(c.QueryParam("book_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("book_id", "int64"))
	}

	notes, apierr := n.NoteService.Search(user, c.QueryParam("q"), bookID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

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

type BookService interface {
	GetBooks(actor *entity.User) ([]*contract.BookResponse, apierror.ErrorResponse)
	GetTree(actor *entity.User) ([]*contract.BookTreeNode, apierror.ErrorResponse)
	GetBook(actor *entity.User, bookID int64) (*contract.BookResponse, apierror.ErrorResponse)
	GetChildren(actor *entity.User, bookID int64) ([]*contract.BookResponse, apierror.ErrorResponse)
	CreateBook(actor *entity.User, req *contract.CreateBookRequest) (*contract.BookResponse, apierror.ErrorResponse)
	UpdateBook(actor *entity.User, bookID int64, req *contract.UpdateBookRequest) (*contract.BookResponse, apierror.ErrorResponse)
	DeleteBook(actor *entity.User, bookID int64) apierror.ErrorResponse
}

type DefaultBookRoute struct {
	BookService BookService
}

func NewBookDefault(bookService BookService) *DefaultBookRoute {
	return &DefaultBookRoute{BookService: bookService}
}

func (b *DefaultBookRoute) GetBooks(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	books, apierr := b.BookService.GetBooks(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"books": books}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) GetTree(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	tree, apierr := b.BookService.GetTree(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"books": tree}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) GetBook(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	book, apierr := b.BookService.GetBook(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"book": book}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) GetChildren(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	children, apierr := b.BookService.GetChildren(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"books": children}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) CreateBook(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	book, apierr := b.BookService.CreateBook(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Book created", "book": book}
	return c.JSON(http.StatusCreated, &resp)
}

func (b *DefaultBookRoute) UpdateBook(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	var req contract.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	book, apierr := b.BookService.UpdateBook(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Book updated", "book": book}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookRoute) DeleteBook(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int64"))
	}

	if apierr := b.BookService.DeleteBook(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Book deleted"}
	return c.JSON(http.StatusOK, &resp)
}

func parseID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

package richblocks

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/blocksjson"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	stack_error "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/stack-error"
)

// fieldRequest - значение поля в том виде, в котором его присылает CMS: JSON строкой.
type fieldRequest struct {
	Collection string `json:"collection"`
	EntryID    string `json:"entryId"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

type fieldResponse struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	EntryID    string    `json:"entryId"`
	Field      string    `json:"field"`
	Value      string    `json:"value"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Services) AddFieldServices(g *echo.Group) {
	g.GET("/fields/:id", s.getField)
	g.PUT("/fields/:id", s.putField)
}

func newFieldResponse(f *dao.FieldValue) (fieldResponse, error) {
	value, err := f.StringValue()
	if err != nil {
		return fieldResponse{}, err
	}
	return fieldResponse{
		ID:         f.ID,
		Collection: f.Collection,
		EntryID:    f.EntryID,
		Field:      f.Field,
		Value:      value,
		Version:    f.Version,
		UpdatedAt:  f.UpdatedAt,
	}, nil
}

func (s *Services) getField(c echo.Context) error {
	id := c.Param("id")
	if !dao.ValidID(id) {
		return EErrorDefined(c, apierrors.ErrInvalidID)
	}

	f, err := dao.GetField(s.db, id)
	if errors.Is(err, dao.ErrNotFound) {
		return EErrorDefined(c, apierrors.ErrFieldNotFound)
	}
	if err != nil {
		return EError(c, stack_error.TrackErrorStack(err).AddContext("field", id))
	}

	resp, err := newFieldResponse(f)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// putField сохраняет значение поля. Документ нормализуется перед записью.
func (s *Services) putField(c echo.Context) error {
	id := c.Param("id")
	if !dao.ValidID(id) {
		return EErrorDefined(c, apierrors.ErrInvalidID)
	}

	var req fieldRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	doc := edtypes.EmptyDocument()
	if strings.TrimSpace(req.Value) != "" {
		var err error
		doc, err = blocksjson.ParseJSON(strings.NewReader(req.Value))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrInvalidDocument)
		}
	}

	f, err := dao.SaveFieldValue(s.db, &dao.FieldValue{
		ID:         id,
		Collection: req.Collection,
		EntryID:    req.EntryID,
		Field:      req.Field,
		Value:      *s.normalize(doc, false),
	})
	if err != nil {
		return EError(c, stack_error.TrackErrorStack(err).AddContext("field", id))
	}

	resp, err := newFieldResponse(f)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

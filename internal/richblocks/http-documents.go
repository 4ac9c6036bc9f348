package richblocks

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/blocksjson"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/mdimport"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/render"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
)

type documentRequest struct {
	Document   *edtypes.Document `json:"document" validate:"required"`
	InitStyles bool              `json:"initStyles"`
}

type documentResponse struct {
	Document *edtypes.Document `json:"document"`
}

type cleanRequest struct {
	Document []blocksjson.RawNode `json:"document" validate:"required"`
}

type renderResponse struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

type importRequest struct {
	Source string `json:"source" validate:"required"`
}

func (s *Services) AddDocumentServices(g *echo.Group) {
	g.GET("/blocks", s.getBlocksMenu)
	g.GET("/marks", s.getMarks)

	g.POST("/documents/normalize", s.normalizeDocument)
	g.POST("/documents/clean", s.cleanDocument)
	g.POST("/documents/render", s.renderDocument)
	g.POST("/documents/import", s.importDocument)
}

func (s *Services) AddPresetServices(g *echo.Group) {
	g.GET("/presets", s.getPresets)
	g.POST("/presets/validate", s.validatePresets)
	g.POST("/presets/resolve", s.resolvePresets)
}

// bind разбирает тело запроса и проверяет теги validate.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// badRequest отвечает на ошибку разбора тела запроса.
func badRequest(c echo.Context, err error) error {
	if errors.Is(err, blocksjson.ErrNotArray) {
		return EErrorDefined(c, apierrors.ErrInvalidDocument)
	}
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return EErrorDefined(c, apierrors.ErrRequestTooLarge)
	}
	return EBadRequest(c, err)
}

func (s *Services) getBlocksMenu(c echo.Context) error {
	return c.JSON(http.StatusOK, s.registry.Menu())
}

func (s *Services) getMarks(c echo.Context) error {
	return c.JSON(http.StatusOK, editor.Modifiers)
}

// normalize приводит документ к схеме с настройками поля.
func (s *Services) normalize(doc *edtypes.Document, initStyles bool) *edtypes.Document {
	ed := s.newEditor(doc)
	if initStyles {
		ed.InitStyles()
	}
	return ed.Document()
}

func (s *Services) normalizeDocument(c echo.Context) error {
	var req documentRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, documentResponse{Document: s.normalize(req.Document, req.InitStyles)})
}

func (s *Services) cleanDocument(c echo.Context) error {
	var req cleanRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"document": blocksjson.Clean(req.Document),
	})
}

func (s *Services) renderDocument(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "html"
	}

	var req documentRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	doc := s.normalize(req.Document, false)

	var content string
	var err error
	switch format {
	case "html":
		content, err = render.HTML(doc, s.registry)
	case "markdown":
		content, err = render.Markdown(doc)
	case "text":
		content = render.Text(doc)
	default:
		return EErrorDefined(c, apierrors.ErrUnsupportedFormat.WithFormattedMessage(format))
	}
	if err != nil {
		return EErrorDefined(c, apierrors.ErrRenderFailed)
	}
	s.metrics.renders.WithLabelValues(format).Inc()

	return c.JSON(http.StatusOK, renderResponse{Format: format, Content: content})
}

func (s *Services) importDocument(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = "markdown"
	}

	var req importRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	var doc *edtypes.Document
	switch format {
	case "markdown":
		doc = mdimport.FromMarkdown([]byte(req.Source))
	case "html":
		var err error
		doc, err = mdimport.FromHTML(req.Source)
		if err != nil {
			return EErrorDefined(c, apierrors.ErrImportFailed)
		}
	default:
		return EErrorDefined(c, apierrors.ErrUnsupportedFormat.WithFormattedMessage(format))
	}
	return c.JSON(http.StatusOK, documentResponse{Document: s.normalize(doc, false)})
}

func (s *Services) getPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, s.presets)
}

func bindPresets(c echo.Context) (settings.PluginOptions, error) {
	var o settings.PluginOptions
	if err := c.Bind(&o); err != nil {
		return o, err
	}
	if errs := settings.ValidatePresets(o); len(errs) > 0 {
		return o, apierrors.ErrInvalidPresets.WithDetails(errs)
	}
	return o, nil
}

func (s *Services) validatePresets(c echo.Context) error {
	if _, err := bindPresets(c); err != nil {
		var defined apierrors.DefinedError
		if errors.As(err, &defined) {
			return EErrorDefined(c, defined)
		}
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": true})
}

func (s *Services) resolvePresets(c echo.Context) error {
	o, err := bindPresets(c)
	if err != nil {
		var defined apierrors.DefinedError
		if errors.As(err, &defined) {
			return EErrorDefined(c, defined)
		}
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, o.Resolve())
}

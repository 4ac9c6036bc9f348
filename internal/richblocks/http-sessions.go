package richblocks

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/apierrors"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	store "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/memory-store"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
	stack_error "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/stack-error"
)

type openSessionRequest struct {
	FieldID  *string           `json:"fieldId" validate:"omitempty,id"`
	Document *edtypes.Document `json:"document"`
}

type sessionResponse struct {
	ID        string            `json:"id"`
	FieldID   *string           `json:"fieldId,omitempty"`
	Document  *edtypes.Document `json:"document"`
	Selection *edtypes.Range    `json:"selection"`
	Marks     []string          `json:"marks"`
	Current   string            `json:"current,omitempty"`
	CanUndo   bool              `json:"canUndo"`
	CanRedo   bool              `json:"canRedo"`

	Effects      *editor.Effects `json:"effects,omitempty"`
	Announcement string          `json:"announcement,omitempty"`
}

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

type convertRequest struct {
	Block string `json:"block" validate:"required,blockName"`
}

// moveRequest перемещает блок перетаскиванием (From, To) или на одну позицию (Direction).
type moveRequest struct {
	From      *int    `json:"from" validate:"omitempty,min=0"`
	To        int     `json:"to" validate:"min=0"`
	OffsetY   float64 `json:"offsetY"`
	Direction string  `json:"direction" validate:"omitempty,oneof=up down"`
}

type markRequest struct {
	Mark string `param:"mark" validate:"required,markName"`
}

type styleRequest struct {
	Property   string              `json:"property" validate:"required"`
	Breakpoint string              `json:"breakpoint"`
	Value      string              `json:"value"`
	Image      *edtypes.ImageAsset `json:"image"`
}

type linkRequest struct {
	Action string `json:"action" validate:"required,oneof=insert edit remove"`
	URL    string `json:"url"`
	Text   string `json:"text"`
}

func (s *Services) AddSessionServices(g *echo.Group) {
	g.POST("/sessions", s.openSession)
	g.GET("/sessions/:id", s.getSession)
	g.DELETE("/sessions/:id", s.closeSession)

	g.POST("/sessions/:id/select", s.selectInSession)
	g.POST("/sessions/:id/keys", s.keyDown)
	g.POST("/sessions/:id/text", s.insertText)
	g.POST("/sessions/:id/paste", s.paste)
	g.POST("/sessions/:id/convert", s.convertBlock)
	g.POST("/sessions/:id/move", s.moveBlock)
	g.POST("/sessions/:id/marks/:mark", s.toggleMark)
	g.POST("/sessions/:id/styles", s.setStyle)
	g.POST("/sessions/:id/links", s.editLinks)
	g.POST("/sessions/:id/undo", s.undo)
	g.POST("/sessions/:id/redo", s.redo)
	g.POST("/sessions/:id/commit", s.commitSession)
}

// fillState заполняет ответ состоянием сессии. Вызывается под блокировкой сессии.
func fillState(sess *store.Session, resp *sessionResponse) {
	ed := sess.Editor()
	resp.ID = sess.ID
	resp.FieldID = sess.FieldID
	resp.Document = ed.Document()
	resp.Selection = ed.Selection()
	resp.CanUndo = ed.CanUndo()
	resp.CanRedo = ed.CanRedo()
	resp.Marks = []string{}
	for _, m := range ed.Marks().List() {
		resp.Marks = append(resp.Marks, m.String())
	}
	if _, contract, ok := ed.Current(); ok {
		resp.Current = contract.Name()
	}
}

// command выполняет fn над редактором сессии и возвращает новое состояние.
func (s *Services) command(c echo.Context, fn func(ed *editor.Editor, resp *sessionResponse) error) error {
	var resp sessionResponse
	err := s.doSession(c.Param("id"), func(sess *store.Session) error {
		if err := fn(sess.Editor(), &resp); err != nil {
			return err
		}
		fillState(sess, &resp)
		return nil
	})
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Services) openSession(c echo.Context) error {
	var req openSessionRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	doc := req.Document
	if req.FieldID != nil {
		f, err := dao.GetField(s.db, *req.FieldID)
		if errors.Is(err, dao.ErrNotFound) {
			return EErrorDefined(c, apierrors.ErrFieldNotFound)
		}
		if err != nil {
			return EError(c, stack_error.TrackErrorStack(err).AddContext("field", *req.FieldID))
		}
		doc = &f.Value
	}

	sess, err := s.sessions.Open(req.FieldID, doc)
	if err != nil {
		return EError(c, err)
	}

	var resp sessionResponse
	if err := s.sessions.View(sess.ID, func(sess *store.Session) error {
		fillState(sess, &resp)
		return nil
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Services) getSession(c echo.Context) error {
	var resp sessionResponse
	err := s.viewSession(c.Param("id"), func(sess *store.Session) error {
		fillState(sess, &resp)
		return nil
	})
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Services) closeSession(c echo.Context) error {
	id := c.Param("id")
	closed := s.sessions.Close(id)
	if dao.ValidID(id) {
		if _, err := dao.GetSession(s.db, id); err == nil {
			closed = true
		}
		if err := dao.DeleteSession(s.db, id); err != nil {
			return EError(c, stack_error.TrackErrorStack(err).AddContext("session", id))
		}
	}
	if !closed {
		return EErrorDefined(c, apierrors.ErrSessionNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Services) selectInSession(c echo.Context) error {
	var req edtypes.Range
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if !ed.Select(req) {
			return apierrors.ErrInvalidSelection
		}
		ed.Focus()
		return nil
	})
}

func (s *Services) keyDown(c echo.Context) error {
	var req editor.KeyEvent
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if req.Key == "" {
		return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage("key is required"))
	}
	return s.command(c, func(ed *editor.Editor, resp *sessionResponse) error {
		eff := editor.Dispatch(ed, req)
		resp.Effects = &eff
		resp.Announcement = eff.Announcement
		return nil
	})
}

func (s *Services) insertText(c echo.Context) error {
	var req textRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if ed.Selection() == nil {
			return apierrors.ErrInvalidSelection
		}
		ed.InsertText(req.Text)
		return nil
	})
}

func (s *Services) paste(c echo.Context) error {
	var req editor.DataTransfer
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if req.Text == "" && req.HTML == "" {
		return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage("text or html is required"))
	}
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if ed.Selection() == nil {
			return apierrors.ErrInvalidSelection
		}
		ed.InsertData(req)
		return nil
	})
}

func (s *Services) convertBlock(c echo.Context) error {
	var req convertRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	contract, _ := s.registry.ByName(req.Block)
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if _, ok := contract.Convert(ed); !ok {
			return apierrors.ErrNothingToChange
		}
		return nil
	})
}

func (s *Services) moveBlock(c echo.Context) error {
	var req moveRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.From == nil && req.Direction == "" {
		return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage("from or direction is required"))
	}
	return s.command(c, func(ed *editor.Editor, resp *sessionResponse) error {
		if req.From == nil {
			from, to, ok := editor.MoveCurrentBlock(ed, req.Direction == "up")
			if !ok {
				return apierrors.ErrMoveNotAllowed
			}
			resp.Announcement = editor.MovedAnnouncement(from, to, len(ed.Document().Children))
			return nil
		}

		drag, ok := editor.StartDrag(ed.Document(), *req.From)
		if !ok {
			return apierrors.ErrMoveNotAllowed
		}
		drag.Over(req.To, req.OffsetY)
		announcement, ok := drag.Drop(ed)
		if !ok {
			return apierrors.ErrMoveNotAllowed
		}
		resp.Announcement = announcement
		return nil
	})
}

func (s *Services) toggleMark(c echo.Context) error {
	var req markRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrUnknownMark.WithFormattedMessage(req.Mark))
	}
	mark, _ := edtypes.ParseMark(req.Mark)
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		ed.ToggleMark(mark)
		return nil
	})
}

func (s *Services) setStyle(c echo.Context) error {
	var req styleRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		changed, err := applyStyle(ed, req)
		if err != nil {
			return err
		}
		if !changed {
			return apierrors.ErrNothingToChange
		}
		return nil
	})
}

// applyStyle применяет одну настройку стиля к блокам в выделении. Настройки по
// брейкпоинтам без указания брейкпоинта пишутся в базовый.
func applyStyle(ed *editor.Editor, req styleRequest) (bool, error) {
	bp := req.Breakpoint
	if bp == "" {
		bp = ed.Config().Defaults.Viewport
	}

	switch req.Property {
	case "init":
		return ed.InitStyles() > 0, nil
	case "fontFamily":
		return ed.SetFontFamily(req.Value), nil
	case "fontColor":
		return ed.SetFontColor(req.Value), nil
	case "separatorStyle":
		return ed.SetSeparatorStyle(req.Value), nil
	case "separatorColor":
		return ed.SetSeparatorColor(req.Value), nil
	case "language":
		return ed.SetCodeLanguage(req.Value), nil
	case "image":
		if req.Image == nil {
			return false, apierrors.ErrBadRequest.WithFormattedMessage("image is required")
		}
		return ed.SetImageAsset(*req.Image), nil
	}

	switch key := req.Property; key {
	case string(settings.FontSize), string(settings.FontLeading), string(settings.FontTracking), string(settings.FontAlignment):
		return ed.SetFontSetting(bp, settings.FontKey(key), req.Value), nil
	case string(settings.SeparatorSize), string(settings.SeparatorOrientation), string(settings.SeparatorLength):
		return ed.SetSeparatorSetting(bp, settings.SeparatorKey(key), req.Value), nil
	case string(settings.ImageWidth), string(settings.ImageHeight), string(settings.ImageLock):
		return ed.SetImageSetting(bp, settings.ImageKey(key), req.Value), nil
	}
	return false, apierrors.ErrUnknownSetting.WithFormattedMessage(req.Property)
}

func (s *Services) editLinks(c echo.Context) error {
	var req linkRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	if req.Action != "remove" && req.URL == "" {
		return EErrorDefined(c, apierrors.ErrBadRequest.WithFormattedMessage("url is required"))
	}
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if ed.Selection() == nil {
			return apierrors.ErrInvalidSelection
		}
		switch req.Action {
		case "insert":
			editor.InsertLink(ed, req.URL)
		case "edit":
			if !editor.EditLink(ed, req.URL, req.Text) {
				return apierrors.ErrNothingToChange
			}
		case "remove":
			if !editor.RemoveLink(ed) {
				return apierrors.ErrNothingToChange
			}
		}
		return nil
	})
}

func (s *Services) undo(c echo.Context) error {
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if !ed.Undo() {
			return apierrors.ErrNothingToChange
		}
		return nil
	})
}

func (s *Services) redo(c echo.Context) error {
	return s.command(c, func(ed *editor.Editor, _ *sessionResponse) error {
		if !ed.Redo() {
			return apierrors.ErrNothingToChange
		}
		return nil
	})
}

// commitSession сохраняет документ сессии в поле, к которому она привязана.
func (s *Services) commitSession(c echo.Context) error {
	var saved *dao.FieldValue
	err := s.viewSession(c.Param("id"), func(sess *store.Session) error {
		if sess.FieldID == nil {
			return apierrors.ErrSessionNoField
		}
		f, err := dao.SaveFieldValue(s.db, &dao.FieldValue{
			ID:    *sess.FieldID,
			Value: *sess.Editor().Document(),
		})
		if err != nil {
			return stack_error.TrackErrorStack(err).AddContext("session", sess.ID)
		}
		saved = f
		return nil
	})
	if err != nil {
		return EError(c, err)
	}

	resp, err := newFieldResponse(saved)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

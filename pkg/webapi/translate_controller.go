package webapi

import (
	"net/http"

	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/labstack/echo/v4"
)

type TranslateController struct {
	translator *translate.Translator
	sessions   *session.Manager
}

func NewTranslateController(translator *translate.Translator, sessions *session.Manager) *TranslateController {
	return &TranslateController{translator: translator, sessions: sessions}
}

// Translate answers GET /translate?word=&lang=. lang defaults to the session's language.
func (c *TranslateController) Translate(ctx echo.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	lang := s.PreferredLanguage()
	if l := ctx.QueryParam("lang"); l != "" {
		if !translate.Known(l) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown language "+l)
		}
		lang = translate.ParseLanguage(l)
	}

	word := ctx.QueryParam("word")
	return ctx.JSON(http.StatusOK, map[string]string{
		"word":        word,
		"language":    string(lang),
		"translation": c.translator.Translate(lang, word),
	})
}

// SetLanguage answers PUT /preferences/language.
func (c *TranslateController) SetLanguage(ctx echo.Context) error {
	s, err := sessionFrom(ctx)
	if err != nil {
		return err
	}

	var req struct {
		Language string `json:"language"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if !translate.Known(req.Language) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown language "+req.Language)
	}

	lang := translate.ParseLanguage(req.Language)
	if err := c.sessions.SetLanguage(s.UserID, lang); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(http.StatusOK, map[string]string{"language": string(lang)})
}

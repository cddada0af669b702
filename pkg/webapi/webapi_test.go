package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/dukadb/stor"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/dukahub/dukaweb/pkg/webapi/apimiddleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	api        *apiv1.MockAPI
	stors      *stor.Stors
	sessions   *session.Manager
	translator *translate.Translator
	hub        *notify.Hub
}

func newFixture() *fixture {
	stors := stor.NewInMemoryStors()
	return &fixture{
		api:        apiv1.NewMockAPI(),
		stors:      stors,
		sessions:   session.NewManager(stors, translate.English),
		translator: translate.NewTranslator(translate.DefaultVocabulary()),
		hub:        notify.NewHub(),
	}
}

func testSession(lang translate.Language, caps ...capability.Capability) *session.Session {
	return &session.Session{
		Token:        "t1",
		UserID:       "u1",
		Username:     "asha",
		Language:     lang,
		Capabilities: capability.NewSet(caps...),
	}
}

// setupEchoContext creates a test Echo context carrying s as the request's session.
func setupEchoContext(t *testing.T, method, target string, body []byte, s *session.Session, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params) != 0 {
		var names, values []string
		for name, value := range params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if s != nil {
		c.Set(apimiddleware.SessionKey, s)
	}

	return c, rec
}

func httpCode(t *testing.T, err error) int {
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *echo.HTTPError, got %v", err)
	return httpErr.Code
}

func mustJSON(t *testing.T, v any) []byte {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestNoSessionIsUnauthorized(t *testing.T) {
	f := newFixture()
	controller := NewTranslateController(f.translator, f.sessions)

	ctx, _ := setupEchoContext(t, http.MethodGet, "/translate?word=price", nil, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, controller.Translate(ctx)))
}

func TestTranslateUsesSessionLanguage(t *testing.T) {
	f := newFixture()
	controller := NewTranslateController(f.translator, f.sessions)

	ctx, rec := setupEchoContext(t, http.MethodGet, "/translate?word=phone_number", nil, testSession(translate.Swahili), nil)
	require.NoError(t, controller.Translate(ctx))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Namba ya simu", body["translation"])
	assert.Equal(t, "swahili", body["language"])

	ctx, rec = setupEchoContext(t, http.MethodGet, "/translate?word=bei&lang=en", nil, testSession(translate.Swahili), nil)
	require.NoError(t, controller.Translate(ctx))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Price", body["translation"])

	ctx, _ = setupEchoContext(t, http.MethodGet, "/translate?word=bei&lang=klingon", nil, testSession(translate.Swahili), nil)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, controller.Translate(ctx)))
}

func TestSetLanguage(t *testing.T) {
	f := newFixture()
	controller := NewTranslateController(f.translator, f.sessions)

	s, err := f.sessions.Login("u1", "asha")
	require.NoError(t, err)

	body := mustJSON(t, map[string]string{"language": "sw"})
	ctx, rec := setupEchoContext(t, http.MethodPut, "/preferences/language", body, s, nil)
	require.NoError(t, controller.SetLanguage(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	reloaded, err := f.sessions.GetSessionByToken(s.Token)
	require.NoError(t, err)
	assert.Equal(t, translate.Swahili, reloaded.Language)

	body = mustJSON(t, map[string]string{"language": "french"})
	ctx, _ = setupEchoContext(t, http.MethodPut, "/preferences/language", body, s, nil)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, controller.SetLanguage(ctx)))
}

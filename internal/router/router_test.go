package router

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"behavior-go/internal/config"
	"behavior-go/internal/export"
	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]*)">`)

var testServer = config.ServerConfig{SessionSecret: "test-secret-test-secret-test-secret"}

// client replays cookies and the CSRF token like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
	token   string
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, handler: h, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()
	var req *http.Request
	if form != nil {
		if cl.token != "" && form.Get("_csrf") == "" {
			form.Set("_csrf", cl.token)
		}
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.handler.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	if m := csrfMeta.FindStringSubmatch(w.Body.String()); m != nil {
		cl.token = m[1]
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(http.MethodGet, path, nil)
}

func (cl *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return cl.do(http.MethodPost, path, form)
}

type fakeSessionArchive struct {
	mu        sync.Mutex
	summaries []survey.Summary
	paths     []string
}

func (f *fakeSessionArchive) SaveSession(ctx context.Context, s survey.Summary, path string) (*models.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, s)
	f.paths = append(f.paths, path)
	return &models.SessionRecord{Participant: s.Participant.Name}, nil
}

func testBank() *models.Bank {
	return models.NewBankFromQuestions(map[models.QuestionSet][]models.Question{
		models.SetSPSRQ: {
			{ID: 1, Text: "I like winning", Category: models.CategoryReward},
			{ID: 2, Text: "I seek praise", Category: models.CategoryReward},
			{ID: 3, Text: "I avoid conflict", Category: models.CategoryPunishment},
			{ID: 4, Text: "I worry about mistakes", Category: models.CategoryPunishment},
		},
		models.SetRSS: {
			{ID: 1, Text: "Music"},
			{ID: 2, Text: "Extra screen time"},
			{ID: 3, Text: "Praise"},
		},
		models.SetASQ: {
			{ID: 1, Text: "Chores"},
			{ID: 2, Text: "Loud noise"},
		},
	})
}

func ratings(set models.QuestionSet, values ...int) url.Values {
	form := url.Values{}
	for i, v := range values {
		form.Set(set.QualifiedID(i+1), strconv.Itoa(v))
	}
	return form
}

func TestAssessmentFlow(t *testing.T) {
	exportDir := t.TempDir()
	archive := &fakeSessionArchive{}
	r := Setup(zap.NewNop(), testServer, survey.NewStore(testBank()), exportDir, archive)
	cl := newClient(t, r)

	w := cl.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Informed Consent Form")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "nonce-")
	require.NotEmpty(t, cl.token)

	// Nothing past consent is reachable yet.
	w = cl.get("/assessment")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = cl.post("/consent", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter your full name")

	w = cl.post("/consent", url.Values{"name": {"Ronda Montelli"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment", w.Header().Get("Location"))

	w = cl.get("/assessment")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "(SPSRQ)")
	assert.Contains(t, w.Body.String(), `name="Q4"`)

	w = cl.post("/assessment/spsrq", url.Values{"Q1": {"5"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please answer every question")
	assert.Contains(t, w.Body.String(), "question-missing")

	w = cl.post("/assessment/spsrq", ratings(models.SetSPSRQ, 6, 6, 9, 2))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Some answers could not be read")

	w = cl.post("/assessment/spsrq", ratings(models.SetSPSRQ, 6, 6, 2, 2))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.get("/assessment")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "(RSS)")
	assert.Contains(t, w.Body.String(), "Total Sensitivity to Reward (SR): 12")
	assert.Contains(t, w.Body.String(), `action="/assessment/followup"`)

	// The SPSRQ cannot be submitted twice.
	w = cl.post("/assessment/spsrq", ratings(models.SetSPSRQ, 1, 1, 7, 7))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment", w.Header().Get("Location"))

	w = cl.get("/assessment/summary")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.post("/assessment/followup", ratings(models.SetRSS, 5, 7, 6))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment/summary", w.Header().Get("Location"))

	rows, err := export.Load(filepath.Join(exportDir, "Ronda_Montelli_sticker_data.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.StickerRow{QID: "RSS_2", Question: "Extra screen time", Response: 7}, rows[0])

	require.Len(t, archive.summaries, 1)
	assert.Equal(t, "Ronda Montelli", archive.summaries[0].Participant.Name)

	w = cl.get("/assessment/summary")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Dominant Sensitivity")
	assert.Contains(t, body, "6.00")
	assert.Contains(t, body, "Bliss Point")
	assert.Contains(t, body, "Ronda_Montelli_sticker_data.csv")

	w = cl.get("/assessment/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Ronda_Montelli_sticker_data.csv"`)
	assert.True(t, strings.HasPrefix(w.Body.String(), "qid,question,response"))

	// Consent again is refused and sends the participant to the summary.
	w = cl.post("/consent", url.Values{"name": {"Someone Else"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment/summary", w.Header().Get("Location"))
}

func TestAssessmentRejectsMissingCSRFToken(t *testing.T) {
	r := Setup(zap.NewNop(), testServer, survey.NewStore(testBank()), t.TempDir(), nil)
	cl := newClient(t, r)

	cl.get("/")
	w := cl.post("/consent", url.Values{"name": {"Ronda"}, "_csrf": {"forged"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssessmentFollowUpUnavailable(t *testing.T) {
	bank := models.NewBankFromQuestions(map[models.QuestionSet][]models.Question{
		models.SetSPSRQ: {
			{ID: 1, Text: "reward", Category: models.CategoryReward},
			{ID: 2, Text: "punishment", Category: models.CategoryPunishment},
		},
	})
	r := Setup(zap.NewNop(), testServer, survey.NewStore(bank), t.TempDir(), nil)
	cl := newClient(t, r)

	cl.get("/")
	cl.post("/consent", url.Values{"name": {"Ronda"}})
	w := cl.post("/assessment/spsrq", ratings(models.SetSPSRQ, 4, 4))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.get("/assessment")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no questions for RSS")
}

func TestAssessmentFollowUpExportRetry(t *testing.T) {
	exportDir := filepath.Join(t.TempDir(), "exports")
	require.NoError(t, os.WriteFile(exportDir, []byte("not a directory"), 0o644))
	archive := &fakeSessionArchive{}
	r := Setup(zap.NewNop(), testServer, survey.NewStore(testBank()), exportDir, archive)
	cl := newClient(t, r)

	cl.get("/")
	cl.post("/consent", url.Values{"name": {"Ronda Montelli"}})
	w := cl.post("/assessment/spsrq", ratings(models.SetSPSRQ, 6, 6, 2, 2))
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = cl.post("/assessment/followup", ratings(models.SetRSS, 5, 7, 6))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Your answers could not be saved")
	assert.Contains(t, body, `action="/assessment/followup"`)
	assert.Contains(t, body, `name="RSS_2" type="range" min="1" max="7" step="1" value="7"`)
	assert.Empty(t, archive.summaries)

	// The follow-up stays open until the export is written.
	w = cl.get("/assessment/summary")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment", w.Header().Get("Location"))

	require.NoError(t, os.Remove(exportDir))
	w = cl.post("/assessment/followup", ratings(models.SetRSS, 5, 7, 6))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/assessment/summary", w.Header().Get("Location"))

	rows, err := export.Load(filepath.Join(exportDir, "Ronda_Montelli_sticker_data.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "RSS_2", rows[0].QID)
	require.Len(t, archive.summaries, 1)

	w = cl.get("/assessment/summary")
	assert.Equal(t, http.StatusOK, w.Code)
}

func newTestTracker(t *testing.T) (*tracker.Tracker, string) {
	t.Helper()
	logDir := t.TempDir()
	tr, err := tracker.New(tracker.Options{
		Reinforcer: tracker.Reinforcer{
			Type:    tracker.Reward,
			Stimuli: []export.StickerRow{{QID: "RSS_2", Question: "Extra screen time", Response: 7}},
		},
		Behaviors: []tracker.BehaviorMapping{
			{Target: "Procrastination", Modified: "Start homework by 5pm"},
			{Target: "Interrupting", Modified: "Raise hand"},
		},
		LogDir: logDir,
		Rand:   rand.New(rand.NewSource(7)),
	})
	require.NoError(t, err)
	return tr, logDir
}

func TestTrackerFlow(t *testing.T) {
	tr, logDir := newTestTracker(t)
	cl := newClient(t, SetupTracker(zap.NewNop(), testServer, tr, nil))

	w := cl.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Phase I")
	assert.Contains(t, w.Body.String(), "Procrastination")
	assert.Contains(t, w.Body.String(), "Weekly Goal: 1 sticker")

	w = cl.post("/week", url.Values{"cell_0_0": {"on"}, "cell_1_3": {"on"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Weekly progress updated!")
	assert.Contains(t, w.Body.String(), "Weekly Reward Goal Met! (2 / 1 stickers)")
	assert.True(t, tr.Grid().Get(1, 3))

	w = cl.post("/schedule", url.Values{"schedule": {"Fixed Ratio"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Weekly Goal: 15 stickers")
	assert.Contains(t, w.Body.String(), "13 more stickers needed")

	w = cl.post("/schedule", url.Values{"schedule": {"Sometimes"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, tracker.FixedRatio, tr.State().Schedule)

	w = cl.post("/phase", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tracker.PhaseII, tr.State().Phase)

	w = cl.post("/rollover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log saved as weekly_behavior_log_week1.csv")
	assert.Equal(t, 1, tr.State().Week)
	assert.Zero(t, tr.Grid().Total())

	rows, err := tracker.ReadLog(filepath.Join(logDir, "weekly_behavior_log_week1.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Mon)
	assert.Equal(t, "Phase II", rows[0].Phase)
	assert.Equal(t, 2, rows[0].Total)

	w = cl.get("/logs/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "weekly_behavior_log_week1.csv")

	assert.Equal(t, http.StatusNotFound, cl.get("/logs/9").Code)
	assert.Equal(t, http.StatusBadRequest, cl.get("/logs/latest").Code)
}

func TestUnavailableBlocksEveryRoute(t *testing.T) {
	_, err := tracker.LoadBehaviors(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, models.ErrDataUnavailable)

	cl := newClient(t, Unavailable(zap.NewNop(), testServer, "Required data files are missing", err))
	w := cl.get("/")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Required data files are missing")
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/SAP-F-2025/quizmark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAnswers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnswersPath, r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get(CSRFHeaderName))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.AnswersRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "task-7", req.TaskID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id":"task-7","type":"multiple_choice","answers":[{"answers":[{"is_correct":false},{"is_correct":true}]}]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(StaticTokenSource("tok-1")))
	require.NoError(t, err)

	resp, err := c.FetchAnswers(context.Background(), "task-7")
	require.NoError(t, err)
	assert.Equal(t, models.MultipleChoice, resp.Type)
	require.Len(t, resp.Answers, 1)
	assert.True(t, resp.Answers[0].Answers[1].IsCorrect)
}

func TestFetchAnswers_FailureStatusIsSingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(StaticTokenSource("tok")))
	require.NoError(t, err)

	_, err = c.FetchAnswers(context.Background(), "task-1")
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchAnswers_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a token")
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchAnswers(context.Background(), "task-1")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestPrimeCSRF_FillsJar(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(CSRFPath, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: CSRFCookieName, Value: "from-cookie", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc(AnswersPath, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CSRFCookieName)
		if err != nil || cookie.Value != r.Header.Get(CSRFHeaderName) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"task_id":"t","type":"true_false","answers":[{"is_true":true}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	require.NoError(t, c.PrimeCSRF(context.Background()))

	resp, err := c.FetchAnswers(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)
	require.NotNil(t, resp.Answers[0].IsTrue)
	assert.True(t, *resp.Answers[0].IsTrue)
}

package share

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/quizmark/internal/events"
	"github.com/SAP-F-2025/quizmark/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClipboard struct {
	mock.Mock
}

func (m *MockClipboard) WriteAll(text string) error {
	return m.Called(text).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(message string, kind NotificationKind) {
	m.Called(message, kind)
}

func testLogger() utils.Logger {
	return utils.NewJSONLogger(&bytes.Buffer{}, slog.LevelError)
}

func TestShare_UsesNativeWhenAvailable(t *testing.T) {
	publisher := events.NewMockEventPublisher()
	clip := new(MockClipboard)
	notifier := new(MockNotifier)

	h := NewHelper(NewEventSharer(publisher), clip, notifier, testLogger())
	require.NoError(t, h.Share(context.Background(), Page{URL: "https://quiz.example/t/1", Title: "Quiz"}))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventPageShared, published[0].Type)
	data := published[0].Data.(events.PageSharedEvent)
	assert.Equal(t, "https://quiz.example/t/1", data.URL)

	clip.AssertNotCalled(t, "WriteAll", mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestShare_FallsBackToClipboard(t *testing.T) {
	clip := new(MockClipboard)
	clip.On("WriteAll", "https://quiz.example/t/1").Return(nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", MessageCopied, NotifySuccess).Once()

	h := NewHelper(nil, clip, notifier, testLogger())
	require.NoError(t, h.Share(context.Background(), Page{URL: "https://quiz.example/t/1"}))

	clip.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestShare_ClipboardFailureNotifies(t *testing.T) {
	clip := new(MockClipboard)
	clip.On("WriteAll", mock.Anything).Return(errors.New("no display")).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", MessageCopyFailed, NotifyError).Once()

	h := NewHelper(NewEventSharer(nil), clip, notifier, testLogger())
	err := h.Share(context.Background(), Page{URL: "https://quiz.example"})
	assert.Error(t, err)

	clip.AssertNumberOfCalls(t, "WriteAll", 1)
	notifier.AssertExpectations(t)
}

func TestShare_NativeFailureIsNotRetried(t *testing.T) {
	publisher := events.NewMockEventPublisher()
	publisher.Err = errors.New("broker down")
	clip := new(MockClipboard)
	notifier := new(MockNotifier)

	h := NewHelper(NewEventSharer(publisher), clip, notifier, testLogger())
	assert.Error(t, h.Share(context.Background(), Page{URL: "https://quiz.example"}))
	clip.AssertNotCalled(t, "WriteAll", mock.Anything)
}

func TestShare_EmptyURL(t *testing.T) {
	h := NewHelper(nil, new(MockClipboard), new(MockNotifier), testLogger())
	assert.ErrorIs(t, h.Share(context.Background(), Page{}), ErrNothingToShare)
}

func TestTerminalNotifier(t *testing.T) {
	var out bytes.Buffer
	NewTerminalNotifier(&out, 0).Notify(MessageCopied, NotifySuccess)
	assert.Equal(t, "\r✓ "+MessageCopied+"\n", out.String())
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNew_MatchesSupportedLanguage(t *testing.T) {
	assert.Equal(t, "en", New("en-US").Language())
	assert.Equal(t, "ja", New("ja-JP").Language())
	assert.Equal(t, "en", New("").Language())
	assert.Equal(t, "en", New("fr").Language())
}

func TestText(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Failed to clock in.", en.Text(ClockInFailed))
	assert.Equal(t, "This leave request is already APPROVED.", en.Text(LeaveAlreadyProcessed, "APPROVED"))

	ja := New("ja")
	assert.Equal(t, "出勤打刻に失敗しました。", ja.Text(ClockInFailed))
}

func TestEveryKeyIsTranslated(t *testing.T) {
	for key := range messages[language.English] {
		_, ok := messages[language.Japanese][key]
		assert.True(t, ok, "missing ja message for %s", key)
	}
}

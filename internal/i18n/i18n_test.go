package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		lang string
		want language.Tag
	}{
		{"zh-TW", traditionalChinese},
		{"en", language.English},
		{"en-US", language.English},
		{"", language.English},
		{"not a tag!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := Match(tt.lang); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestPrinter_English(t *testing.T) {
	p := Printer("en")
	if got := p.Sprintf(MsgMaxDepthRange); got != "Max depth must be between 1 and 10" {
		t.Errorf("unexpected English message: %q", got)
	}
	if got := p.Sprintf(MsgStoragePathInvalid, "boom"); got != "Storage path validation failed: boom" {
		t.Errorf("unexpected formatted message: %q", got)
	}
}

func TestPrinter_TraditionalChinese(t *testing.T) {
	p := Printer("zh-TW")
	if got := p.Sprintf(MsgAPIKeyEmpty); got != "Claude API Key 不能為空" {
		t.Errorf("unexpected zh-TW message: %q", got)
	}
	if got := p.Sprintf(MsgAuthPathInvalid, "x"); got != "認證路徑驗證失敗: x" {
		t.Errorf("unexpected formatted zh-TW message: %q", got)
	}
}

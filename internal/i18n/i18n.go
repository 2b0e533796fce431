// Package i18n renders user-facing configuration messages in the UI language.
//
// Message keys are the English text; English needs no catalog entries because
// a missing key is used as its own format string.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	MsgAPIKeyEmpty        = "Claude API key must not be empty"
	MsgAPIKeyFormat       = "Claude API key format is invalid"
	MsgMaxDepthRange      = "Max depth must be between 1 and 10"
	MsgMaxPagesRange      = "Max pages must be between 10 and 1000"
	MsgStoragePathInvalid = "Storage path validation failed: %v"
	MsgAuthPathInvalid    = "Auth path validation failed: %v"
	MsgConfigValid        = "Configuration is valid"
	MsgLoadFailed         = "Failed to load config"
	MsgSaveFailed         = "Failed to save config"
	MsgSnapshotDirFailed  = "Cannot create snapshot directory"
)

var traditionalChinese = language.MustParse("zh-TW")

var supported = []language.Tag{language.English, traditionalChinese}

var matcher = language.NewMatcher(supported)

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	zh := map[string]string{
		MsgAPIKeyEmpty:        "Claude API Key 不能為空",
		MsgAPIKeyFormat:       "Claude API Key 格式不正確",
		MsgMaxDepthRange:      "最大深度必須在 1-10 之間",
		MsgMaxPagesRange:      "最大頁面數必須在 10-1000 之間",
		MsgStoragePathInvalid: "儲存路徑驗證失敗: %v",
		MsgAuthPathInvalid:    "認證路徑驗證失敗: %v",
		MsgConfigValid:        "配置驗證通過",
		MsgLoadFailed:         "載入配置失敗",
		MsgSaveFailed:         "保存配置失敗",
		MsgSnapshotDirFailed:  "無法建立快照目錄",
	}
	for key, msg := range zh {
		if err := b.SetString(traditionalChinese, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Match returns the supported tag closest to lang ("zh-TW", "en-US", ...).
// Unknown or empty values resolve to English.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Printer returns a message printer for lang.
func Printer(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(cat))
}

package useragent

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is a coarse client family.
type Category string

const (
	Server              Category = "server"
	GooglebotJSClient   Category = "googlebot-js-client"
	IOSChrome           Category = "ios-chrome"
	IOSSafari           Category = "ios-safari"
	WindowsPhone        Category = "windows-phone"
	AndroidStockBrowser Category = "android-stock-browser"
	AndroidChrome       Category = "android-chrome"
	UnknownClient       Category = "unknownClient"
)

// Categories lists every value Classify can return, in priority order.
func Categories() []Category {
	return []Category{
		Server,
		GooglebotJSClient,
		IOSChrome,
		IOSSafari,
		WindowsPhone,
		AndroidStockBrowser,
		AndroidChrome,
		UnknownClient,
	}
}

// String returns the category name as sent to the metrics sink.
func (c Category) String() string { return string(c) }

// keywordSet matches when any of its keywords is a substring.
type keywordSet []string

func newKeywordSet(keywords ...string) keywordSet {
	return keywordSet(keywords)
}

func (k keywordSet) contains(s string) bool {
	for _, keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	serverKeywords       = newKeywordSet("server")
	googlebotKeywords    = newKeywordSet("googlebot")
	iOSKeywords          = newKeywordSet("iphone", "ipad", "ipod")
	iOSChromeKeywords    = newKeywordSet("crios")
	windowsPhoneKeywords = newKeywordSet("windows phone", "trident")
	androidKeywords      = newKeywordSet("android")
	stockBrowserKeywords = newKeywordSet("version")
)

// fold is safe for concurrent use; cases.Caser values are not.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Classify returns the category of the raw user agent string ua.
// The empty string is an unknown client.
func Classify(ua string) Category {
	if ua == "" {
		return UnknownClient
	}
	lowerUA := fold(ua)

	if serverKeywords.contains(lowerUA) {
		return Server
	}

	// Googlebot impersonates iPhone user agents, check it first.
	if googlebotKeywords.contains(lowerUA) {
		return GooglebotJSClient
	}

	if iOSKeywords.contains(lowerUA) {
		if iOSChromeKeywords.contains(lowerUA) {
			return IOSChrome
		}
		return IOSSafari
	}

	// Windows Phone 10 adds "Android" to its UA.
	if windowsPhoneKeywords.contains(lowerUA) {
		return WindowsPhone
	}

	if androidKeywords.contains(lowerUA) {
		if stockBrowserKeywords.contains(lowerUA) {
			return AndroidStockBrowser
		}
		return AndroidChrome
	}

	return UnknownClient
}

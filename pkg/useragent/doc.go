// Package useragent maps raw HTTP User-Agent strings to a small, fixed set of
// coarse client categories used to segment error counters.
//
// The categories are intentionally coarse. They answer "which family of
// clients is failing" for the metrics sink, not "which exact browser build".
//
// # Priority
//
// Many real user agents match more than one family, so Classify applies its
// tests in a fixed order and the first match wins:
//
//  1. "server"                      → server
//  2. "googlebot"                   → googlebot-js-client (Googlebot claims to be an iPhone)
//  3. "iphone" / "ipad" / "ipod"    → ios-chrome when "crios" is present, else ios-safari
//  4. "windows phone" / "trident"   → windows-phone (Windows Phone 10 also says "android")
//  5. "android"                     → android-stock-browser when "version" is present, else android-chrome
//  6. anything else                 → unknownClient
//
// Matching is case-insensitive.
//
// # Usage
//
//	cat := useragent.Classify(r.UserAgent())
//	counter.WithLabelValues(string(cat)).Inc()
package useragent

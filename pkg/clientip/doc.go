// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// A Resolver checks its trusted headers in order and returns the first
// valid address; X-Forwarded-For style lists yield their left-most valid
// entry. When no header carries an address the TCP peer is used.
// Addresses are normalized through net/netip, so IPv4-mapped IPv6 forms
// collapse to plain IPv4 and zones are dropped.
//
//	r := clientip.New() // CF-Connecting-IP, X-Forwarded-For, X-Real-IP
//	router.Use(r.Middleware)
//	ip := clientip.FromContext(req.Context())
//
// Only list headers your proxies overwrite. A header the edge passes
// through untouched lets clients choose their own address.
package clientip

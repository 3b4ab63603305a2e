// Package session holds the cache-mirrored session scheme: an opaque random
// identity carried in a cookie, and a small JSON blob stored in Redis under
// session:<identity> with a sliding one-hour lifetime.
package session

import "time"

// TTL is the sliding lifetime of both the cookie and the cached blob.
const TTL = time.Hour

// Data is the request-scoped working copy of a session blob. The cache owns
// the durable copy; concurrent requests on the same identity race and the
// last write-back wins.
type Data struct {
	UserID   int64             `json:"user_id,omitempty"`
	UserName string            `json:"user_name,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// LoggedIn reports whether the blob carries an authenticated identity.
func (d *Data) LoggedIn() bool {
	return d.UserID != 0
}

// Merge copies fields from the stored blob into d without clobbering values
// already set on d during this request.
func (d *Data) Merge(stored *Data) {
	if stored == nil {
		return
	}
	if d.UserID == 0 {
		d.UserID = stored.UserID
	}
	if d.UserName == "" {
		d.UserName = stored.UserName
	}
	for k, v := range stored.Extra {
		if d.Extra == nil {
			d.Extra = make(map[string]string)
		}
		if _, ok := d.Extra[k]; !ok {
			d.Extra[k] = v
		}
	}
}

// Set stores a handler-defined value in the extension map.
func (d *Data) Set(key, value string) {
	if d.Extra == nil {
		d.Extra = make(map[string]string)
	}
	d.Extra[key] = value
}

// Get reads a handler-defined value from the extension map.
func (d *Data) Get(key string) (string, bool) {
	v, ok := d.Extra[key]
	return v, ok
}

// Clear empties the blob in place.
func (d *Data) Clear() {
	d.UserID = 0
	d.UserName = ""
	d.Extra = nil
}

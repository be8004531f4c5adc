// Package httputil downloads reference data over HTTP.
//
// The tokenizer can use a CMU-format pronunciation dictionary. It is too
// large to embed, so [Downloader] fetches it once into the cache directory
// and serves the local copy until it is older than the TTL.
//
//	d := httputil.NewDownloader(dir, 30*24*time.Hour)
//	path, err := d.Fetch(ctx, url, "cmudict.dict", false)
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff via [Retry].
package httputil

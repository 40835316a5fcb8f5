package generation

import (
	"errors"
	"net"
	"net/url"
)

// isNetworkError reports whether err came from the transport rather than
// from a backend response.
func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

package modules

import "net/http"

// Module is the contract every mounted module satisfies: it owns a path
// prefix on the server and shuts down with it.
type Module interface {
	Shutdown()
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a group of routes. The API handlers and the operational
// endpoints (/health, /ready) both implement it.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

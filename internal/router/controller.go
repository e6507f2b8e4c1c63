package router

import (
	"github.com/gorilla/mux"
)

// Controller is a group of handlers that knows how to mount itself.
type Controller interface {
	Register(router *mux.Router)
}

// Mount registers every non-nil controller on router, in order.
func Mount(router *mux.Router, controllers ...Controller) {
	for _, c := range controllers {
		if c == nil {
			continue
		}
		c.Register(router)
	}
}

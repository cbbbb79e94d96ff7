package routes

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/cm-rentals/property-map/controllers"
	"github.com/cm-rentals/property-map/store"
)

// Routes wires the HTTP surface: the form front end POSTs listings, the
// map front end GETs them plus the optional default location.
func Routes(router *mux.Router, st store.Store, redisClient *redis.Client) {
	router.HandleFunc("/health", controllers.Health()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/listings", controllers.CreateListing(st, redisClient)).Methods("POST")
	api.HandleFunc("/listings", controllers.GetAllListings(st, redisClient)).Methods("GET")
	api.HandleFunc("/default-location", controllers.GetDefaultLocation(st)).Methods("GET")
}

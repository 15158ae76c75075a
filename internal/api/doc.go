// Package api implements the HTTP handlers of the account subsystem. The
// handlers translate between the wire contracts and the account lifecycle
// service; all business rules live below this layer.
package api

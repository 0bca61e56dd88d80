// Package service implements business logic for crewmap.
//
// GraphService sits between the HTTP handlers and the repository. It builds
// the /api/graph payload from stored records, resolves detail pages, and
// imports and exports datasets through the codec package. Every import
// publishes an event on the EventBus, which the server forwards to SSE
// clients.
package service

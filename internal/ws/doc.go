// Package ws pushes report snapshots to WebSocket clients. Clients get the
// current reports on connect and a fresh payload every time the dataset is
// reloaded; there is no polling interval because reports only change with
// the underlying data.
package ws

// Package websocket pushes live snapshot updates to browser clients.
//
// The Hub fans out per-instance snapshot broadcasts to every connected
// client watching that instance. Clients subscribe by handle when the
// connection is upgraded; the hub drops clients whose send queue fills up
// rather than blocking the broadcaster.
package websocket

// Package catalog enumerates the message kinds exchanged with the native app.
//
// Every envelope carries a MessageType tag that selects the shape of its
// payload. The catalog is a closed set: each Kind records which side starts
// the exchange and whether the payload is empty, and the payload structs in
// this package describe the JSON carried by each tag. The bridge core only
// switches on the tag; payload shapes are consulted by typed helpers and by
// schema validation.
package catalog

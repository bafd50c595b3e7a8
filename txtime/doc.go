// File: txtime/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package txtime sends frames with an OS scheduled-release request.
//
// On Linux the release instant travels as an SCM_TXTIME control record next
// to the payload and the etf qdisc holds the frame until that instant. The
// socket must have SO_TXTIME enabled (see EnableSocket). Platforms without
// the facility get a no-op attacher.
package txtime

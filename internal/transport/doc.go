// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Channel sockets for hioload-txtime publishers.
// Opens raw AF_PACKET or UDP multicast sockets with SO_PRIORITY and SO_TXTIME
// configured, strictly separated by build tags. The scheduled-send core only
// borrows the descriptor and addressing through api.Channel.

package transport

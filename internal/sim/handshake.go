package sim

// Toast messages raised when a handshake resolves.
const (
	HandshakeSuccessToast = "Sync Tunnel Established"
	HandshakeFailureToast = "Authorization Error 0x77"
)

// Troubleshooting steps shown after a failed handshake.
var HandshakeTroubleshooting = []string{
	"Verify Notion Integration Token",
	`Check "Insert Content" permissions`,
	"Reset Zapier Catch Hook",
}

package webos

// Manifest is the static JSON document sent during pairing that declares
// the requesting client's identity and the permissions it wants. It is
// sent verbatim as payload.manifest in the register envelope.
type Manifest struct {
	ManifestVersion int      `json:"manifestVersion"`
	AppID           string   `json:"appId"`
	Vendor          string   `json:"vendorName"`
	SignatureAlgs   []string `json:"signatureAlgorithm,omitempty"`
	Permissions     []string `json:"permissions"`
}

// DefaultPermissions is the full set of read (status) and write (control)
// SSAP permissions the bundled command registry exercises.
var DefaultPermissions = []string{
	"LAUNCH",
	"LAUNCH_WEBAPP",
	"APP_TO_APP",
	"CLOSE",
	"TEST_OPEN",
	"TEST_PROTECTED",
	"CONTROL_AUDIO",
	"CONTROL_DISPLAY",
	"CONTROL_INPUT_JOYSTICK",
	"CONTROL_INPUT_MEDIA_RECORDING",
	"CONTROL_INPUT_MEDIA_PLAYBACK",
	"CONTROL_INPUT_TV",
	"CONTROL_POWER",
	"READ_APP_STATUS",
	"READ_CURRENT_CHANNEL",
	"READ_INPUT_DEVICE_LIST",
	"READ_NETWORK_STATE",
	"READ_RUNNING_APPS",
	"READ_TV_CHANNEL_LIST",
	"WRITE_NOTIFICATION_TOAST",
	"READ_POWER_STATE",
	"READ_COUNTRY_INFO",
}

// NewManifest builds a Manifest for the given appID/vendor using the
// library's default permission set. Callers needing a narrower permission
// grant can copy DefaultPermissions and trim it before constructing their
// own Manifest directly.
func NewManifest(appID, vendor string) Manifest {
	permissions := make([]string, len(DefaultPermissions))
	copy(permissions, DefaultPermissions)
	return Manifest{
		ManifestVersion: 1,
		AppID:           appID,
		Vendor:          vendor,
		Permissions:     permissions,
	}
}
